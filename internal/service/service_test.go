package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/taxwiser/internal/auth"
	"github.com/mmynk/taxwiser/internal/knowledge"
	"github.com/mmynk/taxwiser/internal/middleware"
	"github.com/mmynk/taxwiser/internal/rpc"
	"github.com/mmynk/taxwiser/internal/session"
	"github.com/mmynk/taxwiser/internal/storage/sqlite"
	"github.com/mmynk/taxwiser/internal/taxrules"
)

// testIdentityInterceptor puts the email and name from test headers in the
// context, standing in for the JWT interceptor.
func testIdentityInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if email := req.Header().Get("X-Test-Email"); email != "" {
				ctx = context.WithValue(ctx, middleware.EmailKey, email)
				ctx = context.WithValue(ctx, middleware.NameKey, req.Header().Get("X-Test-Name"))
			}
			return next(ctx, req)
		}
	}
}

type testEnv struct {
	dbPath    string
	store     *sqlite.SQLiteStore
	sessions  *session.Manager
	returns   *ReturnService
	client    *rpc.ReturnServiceClient
	assistant *rpc.AssistantServiceClient
	auth      *rpc.AuthServiceClient
	jwt       *auth.JWTManager
}

// setupTestServer creates a test server backed by a temp SQLite database.
func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "taxwiser-service-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	dbPath := filepath.Join(tempDir, "test.db")
	store, err := sqlite.New(dbPath)
	if err != nil {
		os.RemoveAll(tempDir)
		t.Fatalf("failed to create store: %v", err)
	}

	sessions := session.NewManager()
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	returns := NewReturnService(store, sessions, taxrules.DefaultCounties(), WithAutosave(time.Second))
	authSvc := NewAuthService(auth.NewAuthenticator(store), jwtManager, sessions, slog.Default())
	assistantSvc := NewAssistantService(knowledge.Default(), nil)

	identity := connect.WithInterceptors(testIdentityInterceptor())
	mux := http.NewServeMux()
	mux.Handle(rpc.NewReturnServiceHandler(returns, identity))
	mux.Handle(rpc.NewAssistantServiceHandler(assistantSvc, identity))
	mux.Handle(rpc.NewAuthServiceHandler(authSvc, connect.WithInterceptors(middleware.OptionalAuth(jwtManager))))
	server := httptest.NewServer(mux)

	t.Cleanup(func() {
		server.Close()
		returns.Wait()
		store.Close()
		os.RemoveAll(tempDir)
	})

	return &testEnv{
		dbPath:    dbPath,
		store:     store,
		sessions:  sessions,
		returns:   returns,
		client:    rpc.NewReturnServiceClient(http.DefaultClient, server.URL),
		assistant: rpc.NewAssistantServiceClient(http.DefaultClient, server.URL),
		auth:      rpc.NewAuthServiceClient(http.DefaultClient, server.URL),
		jwt:       jwtManager,
	}
}

// as builds a request carrying a test identity.
func as[T any](email string, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("X-Test-Email", email)
	req.Header().Set("X-Test-Name", "Ann")
	return req
}

func wantCode(t *testing.T, err error, code connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", code)
	}
	if got := connect.CodeOf(err); got != code {
		t.Fatalf("code = %v, want %v (err: %v)", got, code, err)
	}
}

func fieldByID(fields []rpc.Field, id string) (rpc.Field, bool) {
	for _, f := range fields {
		if f.ID == id {
			return f, true
		}
	}
	return rpc.Field{}, false
}

var singleProfile = rpc.Profile{TaxType: "federal-1040", FilingStatus: "single"}

func startReturn(t *testing.T, env *testEnv, email string, profile rpc.Profile) *rpc.Return {
	t.Helper()
	resp, err := env.client.StartReturn(context.Background(), as(email, &rpc.StartReturnRequest{Profile: profile}))
	if err != nil {
		t.Fatalf("StartReturn failed: %v", err)
	}
	return resp.Msg.Return
}

func TestStartReturn(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	t.Run("federal return", func(t *testing.T) {
		ret := startReturn(t, env, "ann@example.com", singleProfile)
		if ret.Title != "IRS Form 1040" {
			t.Errorf("Title = %q", ret.Title)
		}
		line1a, ok := fieldByID(ret.Fields, "line1a")
		if !ok || !line1a.Editable || line1a.Text != "0.00" {
			t.Errorf("line1a = %+v", line1a)
		}
		if _, ok := fieldByID(ret.Fields, "indianaLine1"); ok {
			t.Error("federal-only return carries Indiana lines")
		}
	})

	t.Run("indiana county rate comes from the table", func(t *testing.T) {
		ret := startReturn(t, env, "bo@example.com", rpc.Profile{
			TaxType:      "combined",
			FilingStatus: "married",
			County:       "marion",
			CountyRate:   "9.99",
		})
		if ret.Profile.County != "Marion" || ret.Profile.CountyRate != "2.02" {
			t.Errorf("Profile = %+v, want Marion at 2.02", ret.Profile)
		}
	})

	t.Run("invalid profiles", func(t *testing.T) {
		tests := []struct {
			name    string
			profile rpc.Profile
		}{
			{"unknown tax type", rpc.Profile{TaxType: "federal-1041", FilingStatus: "single"}},
			{"unknown status", rpc.Profile{TaxType: "federal-1040", FilingStatus: "widowed"}},
			{"federal without status", rpc.Profile{TaxType: "federal-1040"}},
			{"unknown county", rpc.Profile{TaxType: "indiana", County: "Atlantis"}},
			{"spouse flags for single", rpc.Profile{TaxType: "federal-1040", FilingStatus: "single", Spouse65: true}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := env.client.StartReturn(ctx, as("cy@example.com", &rpc.StartReturnRequest{Profile: tt.profile}))
				wantCode(t, err, connect.CodeInvalidArgument)
			})
		}
	})

	t.Run("unauthenticated", func(t *testing.T) {
		_, err := env.client.StartReturn(ctx, connect.NewRequest(&rpc.StartReturnRequest{Profile: singleProfile}))
		wantCode(t, err, connect.CodeUnauthenticated)
	})
}

func TestEditFields(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	const email = "dee@example.com"
	startReturn(t, env, email, singleProfile)

	resp, err := env.client.EditFields(ctx, as(email, &rpc.EditFieldsRequest{
		Values: map[string]string{"line1a": "$50,000", "line25a": "10000"},
	}))
	if err != nil {
		t.Fatalf("EditFields failed: %v", err)
	}

	line11a, ok := fieldByID(resp.Msg.Changed, "line11a")
	if !ok || line11a.Text != "$50,000.00" || line11a.Editable {
		t.Errorf("line11a = %+v", line11a)
	}
	line34, ok := fieldByID(resp.Msg.Changed, "line34")
	if !ok || line34.Signal != "surplus" {
		t.Errorf("line34 = %+v, want surplus signal", line34)
	}
	if !resp.Msg.Sections["refundSection"] || resp.Msg.Sections["owedSection"] {
		t.Errorf("Sections = %v, want refund only", resp.Msg.Sections)
	}
	if resp.Msg.Totals.Signal != "surplus" || resp.Msg.Totals.Payments != "10000.00" {
		t.Errorf("Totals = %+v", resp.Msg.Totals)
	}

	t.Run("unchanged edit reports nothing downstream", func(t *testing.T) {
		resp, err := env.client.EditFields(ctx, as(email, &rpc.EditFieldsRequest{
			Values: map[string]string{"line1a": "50000"},
		}))
		if err != nil {
			t.Fatalf("EditFields failed: %v", err)
		}
		if len(resp.Msg.Changed) != 0 {
			t.Errorf("Changed = %+v, want no derived change", resp.Msg.Changed)
		}
	})

	t.Run("malformed input is zero", func(t *testing.T) {
		resp, err := env.client.EditFields(ctx, as(email, &rpc.EditFieldsRequest{
			Values: map[string]string{"line1a": "lots"},
		}))
		if err != nil {
			t.Fatalf("EditFields failed: %v", err)
		}
		if f, _ := fieldByID(resp.Msg.Changed, "line11a"); f.Text != "$0.00" {
			t.Errorf("line11a = %+v, want $0.00", f)
		}
	})

	t.Run("rejected edits", func(t *testing.T) {
		_, err := env.client.EditFields(ctx, as(email, &rpc.EditFieldsRequest{
			Values: map[string]string{"line11a": "5"},
		}))
		wantCode(t, err, connect.CodeInvalidArgument)

		_, err = env.client.EditFields(ctx, as(email, &rpc.EditFieldsRequest{
			Values: map[string]string{"line99": "5"},
		}))
		wantCode(t, err, connect.CodeInvalidArgument)
	})

	t.Run("no session", func(t *testing.T) {
		_, err := env.client.EditFields(ctx, as("nobody@example.com", &rpc.EditFieldsRequest{
			Values: map[string]string{"line1a": "5"},
		}))
		wantCode(t, err, connect.CodeFailedPrecondition)
	})
}

func TestCombinedReturnCopiesAGI(t *testing.T) {
	env := setupTestServer(t)
	const email = "eve@example.com"
	startReturn(t, env, email, rpc.Profile{TaxType: "combined", FilingStatus: "single", County: "Hamilton"})

	resp, err := env.client.EditFields(context.Background(), as(email, &rpc.EditFieldsRequest{
		Values: map[string]string{"line1a": "40000"},
	}))
	if err != nil {
		t.Fatalf("EditFields failed: %v", err)
	}
	line1, ok := fieldByID(resp.Msg.Changed, "indianaLine1")
	if !ok || line1.Text != "$40,000.00" || line1.Editable {
		t.Errorf("indianaLine1 = %+v", line1)
	}
	if !resp.Msg.Sections["owedSection"] || !resp.Msg.Sections["indianaOwedSection"] {
		t.Errorf("Sections = %v, want both owed", resp.Msg.Sections)
	}
}

func TestSaveAndLoadReturn(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	const email = "fay@example.com"

	t.Run("nothing saved yet", func(t *testing.T) {
		_, err := env.client.LoadReturn(ctx, as(email, &rpc.LoadReturnRequest{}))
		wantCode(t, err, connect.CodeNotFound)
	})

	startReturn(t, env, email, singleProfile)
	if _, err := env.client.EditFields(ctx, as(email, &rpc.EditFieldsRequest{
		Values: map[string]string{"line1a": "1234.56"},
	})); err != nil {
		t.Fatalf("EditFields failed: %v", err)
	}

	saved, err := env.client.SaveReturn(ctx, as(email, &rpc.SaveReturnRequest{}))
	if err != nil {
		t.Fatalf("SaveReturn failed: %v", err)
	}
	if saved.Msg.ID == "" || saved.Msg.LastModified.Unix() == 0 {
		t.Errorf("SaveReturn = %+v", saved.Msg)
	}

	// Start over with a different status, then load the saved return.
	startReturn(t, env, email, rpc.Profile{TaxType: "federal-1040", FilingStatus: "hoh"})

	loaded, err := env.client.LoadReturn(ctx, as(email, &rpc.LoadReturnRequest{}))
	if err != nil {
		t.Fatalf("LoadReturn failed: %v", err)
	}
	if loaded.Msg.ID != saved.Msg.ID {
		t.Errorf("ID = %s, want %s", loaded.Msg.ID, saved.Msg.ID)
	}
	if loaded.Msg.Return.Profile.FilingStatus != "single" {
		t.Errorf("FilingStatus = %s, want single", loaded.Msg.Return.Profile.FilingStatus)
	}
	if f, _ := fieldByID(loaded.Msg.Return.Fields, "line1a"); f.Text != "1234.56" {
		t.Errorf("line1a = %+v, want 1234.56", f)
	}
	if f, _ := fieldByID(loaded.Msg.Return.Fields, "line11a"); f.Text != "$1,234.56" {
		t.Errorf("line11a = %+v, want $1,234.56", f)
	}

	t.Run("save overwrites", func(t *testing.T) {
		again, err := env.client.SaveReturn(ctx, as(email, &rpc.SaveReturnRequest{}))
		if err != nil {
			t.Fatalf("SaveReturn failed: %v", err)
		}
		if again.Msg.ID != saved.Msg.ID {
			t.Errorf("ID = %s, want %s", again.Msg.ID, saved.Msg.ID)
		}
	})

	t.Run("corrupt record", func(t *testing.T) {
		const other = "gus@example.com"
		startReturn(t, env, other, singleProfile)
		if _, err := env.client.SaveReturn(ctx, as(other, &rpc.SaveReturnRequest{})); err != nil {
			t.Fatalf("SaveReturn failed: %v", err)
		}
		corruptReturn(t, env, other)

		_, err := env.client.LoadReturn(ctx, as(other, &rpc.LoadReturnRequest{}))
		wantCode(t, err, connect.CodeDataLoss)

		// The session in progress survives the failed load.
		if _, err := env.client.GetReturn(ctx, as(other, &rpc.GetReturnRequest{})); err != nil {
			t.Errorf("GetReturn after failed load: %v", err)
		}
	})
}

// corruptReturn overwrites a stored blob with bytes that are not CBOR.
func corruptReturn(t *testing.T, env *testEnv, email string) {
	t.Helper()
	db, err := sql.Open("sqlite", env.dbPath)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	defer db.Close()
	if _, err := db.Exec("UPDATE saved_returns SET data = ? WHERE email = ?", []byte{0xff}, email); err != nil {
		t.Fatalf("corrupt return: %v", err)
	}
}

func TestNavigateAutosaves(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	const email = "hal@example.com"
	startReturn(t, env, email, singleProfile)
	if _, err := env.client.EditFields(ctx, as(email, &rpc.EditFieldsRequest{
		Values: map[string]string{"line1a": "777"},
	})); err != nil {
		t.Fatalf("EditFields failed: %v", err)
	}

	resp, err := env.client.Navigate(ctx, as(email, &rpc.NavigateRequest{Section: "deductions"}))
	if err != nil {
		t.Fatalf("Navigate failed: %v", err)
	}
	if !resp.Msg.Autosaving || resp.Msg.Section != "deductions" {
		t.Errorf("Navigate = %+v", resp.Msg)
	}
	env.returns.Wait()

	ret, err := env.store.GetReturnByEmail(ctx, email)
	if err != nil {
		t.Fatalf("autosaved return missing: %v", err)
	}
	if v, _ := ret.State.Value("line1a"); v.String() != "777" {
		t.Errorf("line1a = %s, want 777", v)
	}

	got, err := env.client.GetReturn(ctx, as(email, &rpc.GetReturnRequest{}))
	if err != nil {
		t.Fatalf("GetReturn failed: %v", err)
	}
	if got.Msg.Return.Section != "deductions" {
		t.Errorf("Section = %q, want deductions", got.Msg.Return.Section)
	}
}

func TestDeleteReturn(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	const owner, intruder = "ida@example.com", "jon@example.com"

	startReturn(t, env, owner, singleProfile)
	saved, err := env.client.SaveReturn(ctx, as(owner, &rpc.SaveReturnRequest{}))
	if err != nil {
		t.Fatalf("SaveReturn failed: %v", err)
	}

	_, err = env.client.DeleteReturn(ctx, as(intruder, &rpc.DeleteReturnRequest{ID: saved.Msg.ID}))
	wantCode(t, err, connect.CodePermissionDenied)

	if _, err := env.client.DeleteReturn(ctx, as(owner, &rpc.DeleteReturnRequest{ID: saved.Msg.ID})); err != nil {
		t.Fatalf("DeleteReturn failed: %v", err)
	}
	_, err = env.client.DeleteReturn(ctx, as(owner, &rpc.DeleteReturnRequest{ID: saved.Msg.ID}))
	wantCode(t, err, connect.CodeNotFound)

	// The return in progress is untouched.
	if _, err := env.client.GetReturn(ctx, as(owner, &rpc.GetReturnRequest{})); err != nil {
		t.Errorf("GetReturn after delete: %v", err)
	}
}

func TestSummaryAndPreCheck(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	const email = "kim@example.com"
	startReturn(t, env, email, singleProfile)

	pre, err := env.client.RunPreCheck(ctx, as(email, &rpc.RunPreCheckRequest{}))
	if err != nil {
		t.Fatalf("RunPreCheck failed: %v", err)
	}
	if len(pre.Msg.Warnings) == 0 || !strings.HasPrefix(pre.Msg.Warnings[0], "No income reported") {
		t.Errorf("Warnings = %v", pre.Msg.Warnings)
	}
	if pre.Msg.Advice != nil {
		t.Errorf("Advice = %+v, want none without income", pre.Msg.Advice)
	}

	if _, err := env.client.EditFields(ctx, as(email, &rpc.EditFieldsRequest{
		Values: map[string]string{"line1a": "60000", "line25a": "9000", "itemizedCharitable": "40000"},
	})); err != nil {
		t.Fatalf("EditFields failed: %v", err)
	}

	pre, err = env.client.RunPreCheck(ctx, as(email, &rpc.RunPreCheckRequest{}))
	if err != nil {
		t.Fatalf("RunPreCheck failed: %v", err)
	}
	if len(pre.Msg.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", pre.Msg.Warnings)
	}
	if pre.Msg.Advice == nil || !pre.Msg.Advice.PreferItemized {
		t.Errorf("Advice = %+v, want itemizing preferred", pre.Msg.Advice)
	}

	sum, err := env.client.GetSummary(ctx, as(email, &rpc.GetSummaryRequest{}))
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}
	if sum.Msg.Federal == nil || sum.Msg.Federal.Income != "60000.00" || sum.Msg.Federal.Payments != "9000.00" {
		t.Errorf("Federal = %+v", sum.Msg.Federal)
	}
	if sum.Msg.State != nil {
		t.Errorf("State = %+v, want nil for a federal return", sum.Msg.State)
	}
	if !strings.Contains(sum.Msg.NarrativeHTML, "<strong>") {
		t.Errorf("NarrativeHTML = %q", sum.Msg.NarrativeHTML)
	}
}

func TestListCounties(t *testing.T) {
	env := setupTestServer(t)

	resp, err := env.client.ListCounties(context.Background(), as("lou@example.com", &rpc.ListCountiesRequest{}))
	if err != nil {
		t.Fatalf("ListCounties failed: %v", err)
	}
	if len(resp.Msg.Counties) != 92 {
		t.Errorf("got %d counties, want 92", len(resp.Msg.Counties))
	}
	var marion *rpc.County
	for i := range resp.Msg.Counties {
		if resp.Msg.Counties[i].Name == "Marion" {
			marion = &resp.Msg.Counties[i]
		}
	}
	if marion == nil || marion.Rate != "2.02" {
		t.Errorf("Marion = %+v", marion)
	}
}

func TestAssistant(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	t.Run("greets by name", func(t *testing.T) {
		resp, err := env.assistant.Ask(ctx, as("mo@example.com", &rpc.AskRequest{Question: "hello"}))
		if err != nil {
			t.Fatalf("Ask failed: %v", err)
		}
		if resp.Msg.Kind != "greeting" || !strings.HasPrefix(resp.Msg.Answer, "Hello, Ann!") {
			t.Errorf("Ask = %+v", resp.Msg)
		}
	})

	t.Run("anonymous topic", func(t *testing.T) {
		resp, err := env.assistant.Ask(ctx, connect.NewRequest(&rpc.AskRequest{Question: "What is the standard deduction?"}))
		if err != nil {
			t.Fatalf("Ask failed: %v", err)
		}
		if resp.Msg.Kind != "topic" || resp.Msg.Topic != "standard deduction" || resp.Msg.AnswerHTML == "" {
			t.Errorf("Ask = %+v", resp.Msg)
		}
	})

	t.Run("empty question", func(t *testing.T) {
		_, err := env.assistant.Ask(ctx, connect.NewRequest(&rpc.AskRequest{Question: "  "}))
		wantCode(t, err, connect.CodeInvalidArgument)
	})

	t.Run("search", func(t *testing.T) {
		short, err := env.assistant.Search(ctx, connect.NewRequest(&rpc.SearchRequest{Query: "a"}))
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(short.Msg.Articles) != 0 || short.Msg.Message == "" {
			t.Errorf("Search(a) = %+v", short.Msg)
		}

		found, err := env.assistant.Search(ctx, connect.NewRequest(&rpc.SearchRequest{Query: "Indiana"}))
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(found.Msg.Articles) == 0 || found.Msg.Message != "" {
			t.Errorf("Search(Indiana) = %+v", found.Msg)
		}

		none, err := env.assistant.Search(ctx, connect.NewRequest(&rpc.SearchRequest{Query: "zzzqqq"}))
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(none.Msg.Articles) != 0 || !strings.Contains(none.Msg.Message, "zzzqqq") {
			t.Errorf("Search(zzzqqq) = %+v", none.Msg)
		}
	})
}

func TestLoginAndLogout(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	_, err := env.auth.Login(ctx, connect.NewRequest(&rpc.LoginRequest{Email: "not-an-email", FirstName: "Ned"}))
	wantCode(t, err, connect.CodeInvalidArgument)

	_, err = env.auth.Login(ctx, connect.NewRequest(&rpc.LoginRequest{Email: "ned@example.com"}))
	wantCode(t, err, connect.CodeInvalidArgument)

	login, err := env.auth.Login(ctx, connect.NewRequest(&rpc.LoginRequest{Email: " Ned@Example.com", FirstName: "Ned"}))
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if login.Msg.User.Email != "ned@example.com" || !strings.HasPrefix(login.Msg.Greeting, "Hello, Ned!") {
		t.Errorf("Login = %+v", login.Msg)
	}
	claims, err := env.jwt.Validate(login.Msg.Token)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if claims.Name != "Ned" {
		t.Errorf("claims.Name = %q", claims.Name)
	}

	startReturn(t, env, "ned@example.com", singleProfile)

	_, err = env.auth.Logout(ctx, connect.NewRequest(&rpc.LogoutRequest{}))
	wantCode(t, err, connect.CodeUnauthenticated)

	req := connect.NewRequest(&rpc.LogoutRequest{})
	req.Header().Set("Authorization", "Bearer "+login.Msg.Token)
	out, err := env.auth.Logout(ctx, req)
	if err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if !out.Msg.EndedSession {
		t.Error("Logout did not end the session")
	}
	if _, err := env.sessions.Get("ned@example.com"); !errors.Is(err, session.ErrNoSession) {
		t.Errorf("session still open: %v", err)
	}
}
