package rpc

// User is the signed-in filer.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

type LoginRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	User     *User  `json:"user"`
	Greeting string `json:"greeting"`
}

type LogoutRequest struct{}

type LogoutResponse struct {
	// EndedSession is true when a return in progress was discarded.
	EndedSession bool `json:"endedSession"`
}

// Profile is the filing profile chosen at intake.
type Profile struct {
	TaxType      string `json:"taxType"`
	FilingStatus string `json:"filingStatus,omitempty"`
	Self65       bool   `json:"self65,omitempty"`
	SelfBlind    bool   `json:"selfBlind,omitempty"`
	Spouse65     bool   `json:"spouse65,omitempty"`
	SpouseBlind  bool   `json:"spouseBlind,omitempty"`
	County       string `json:"county,omitempty"`
	// CountyRate is the county rate in percent, as decimal text. It is
	// filled from the county table.
	CountyRate string `json:"countyRate,omitempty"`
}

// Field is one form line.
type Field struct {
	ID       string `json:"id"`
	Ledger   string `json:"ledger"`
	Editable bool   `json:"editable"`
	Text     string `json:"text"`
	Signal   string `json:"signal,omitempty"`
}

// Totals is the running tax position.
type Totals struct {
	Tax      string `json:"tax"`
	Payments string `json:"payments"`
	Balance  string `json:"balance"`
	Signal   string `json:"signal"`
}

// Return is the full view of a return in progress.
type Return struct {
	Profile     Profile         `json:"profile"`
	Title       string          `json:"title"`
	StatusLabel string          `json:"statusLabel,omitempty"`
	Section     string          `json:"section,omitempty"`
	Fields      []Field         `json:"fields"`
	Sections    map[string]bool `json:"sections"`
	Totals      Totals          `json:"totals"`
}

type StartReturnRequest struct {
	Profile Profile `json:"profile"`
}

type StartReturnResponse struct {
	Return *Return `json:"return"`
}

type EditFieldsRequest struct {
	// Values maps line ids to raw input text.
	Values map[string]string `json:"values"`
}

type EditFieldsResponse struct {
	// Changed lists the lines whose value or signal changed, in
	// computation order.
	Changed  []Field         `json:"changed"`
	Sections map[string]bool `json:"sections"`
	Totals   Totals          `json:"totals"`
}

type GetReturnRequest struct{}

type GetReturnResponse struct {
	Return *Return `json:"return"`
}

type NavigateRequest struct {
	Section string `json:"section"`
}

type NavigateResponse struct {
	Section string `json:"section"`
	// Autosaving is true when a background save was started.
	Autosaving bool `json:"autosaving"`
}

type SaveReturnRequest struct{}

type SaveReturnResponse struct {
	ID           string    `json:"id"`
	LastModified Timestamp `json:"lastModified"`
}

type LoadReturnRequest struct{}

type LoadReturnResponse struct {
	ID           string    `json:"id"`
	LastModified Timestamp `json:"lastModified"`
	Return       *Return   `json:"return"`
}

type DeleteReturnRequest struct {
	ID string `json:"id"`
}

type DeleteReturnResponse struct{}

type FederalSummary struct {
	Income     string `json:"income"`
	Deductions string `json:"deductions"`
	Taxable    string `json:"taxable"`
	Tax        string `json:"tax"`
	Payments   string `json:"payments"`
	Final      string `json:"final"`
	Itemizing  bool   `json:"itemizing"`
}

type StateSummary struct {
	FederalAGI     string `json:"federalAgi"`
	FederalTax     string `json:"federalTax"`
	IndianaTax     string `json:"indianaTax"`
	TotalLiability string `json:"totalLiability"`
	TotalCredits   string `json:"totalCredits"`
	Final          string `json:"final"`
}

type GetSummaryRequest struct{}

type GetSummaryResponse struct {
	Federal       *FederalSummary `json:"federal,omitempty"`
	State         *StateSummary   `json:"state,omitempty"`
	Narrative     string          `json:"narrative"`
	NarrativeHTML string          `json:"narrativeHtml"`
}

// Advice compares itemized deductions with the standard deduction.
type Advice struct {
	Itemized       string `json:"itemized"`
	Standard       string `json:"standard"`
	PreferItemized bool   `json:"preferItemized"`
	Message        string `json:"message"`
}

type RunPreCheckRequest struct{}

type RunPreCheckResponse struct {
	Warnings []string `json:"warnings"`
	Advice   *Advice  `json:"advice,omitempty"`
}

type County struct {
	Name string `json:"name"`
	Rate string `json:"rate"`
}

type ListCountiesRequest struct{}

type ListCountiesResponse struct {
	Counties []County `json:"counties"`
}

type AskRequest struct {
	Question string `json:"question"`
}

type AskResponse struct {
	Answer     string `json:"answer"`
	AnswerHTML string `json:"answerHtml"`
	Kind       string `json:"kind"`
	Topic      string `json:"topic,omitempty"`
}

type Article struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type SearchRequest struct {
	Query string `json:"query"`
}

type SearchResponse struct {
	Articles []Article `json:"articles"`
	// Message explains an empty result.
	Message string `json:"message,omitempty"`
}
