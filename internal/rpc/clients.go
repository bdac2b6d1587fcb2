package rpc

import (
	"context"

	"connectrpc.com/connect"
)

// AuthServiceClient calls AuthService.
type AuthServiceClient struct {
	login  *connect.Client[LoginRequest, LoginResponse]
	logout *connect.Client[LogoutRequest, LogoutResponse]
}

// NewAuthServiceClient constructs a client for AuthService at baseURL
// (for example, http://localhost:8080).
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AuthServiceClient {
	opts = clientOptions(opts)
	return &AuthServiceClient{
		login:  connect.NewClient[LoginRequest, LoginResponse](httpClient, baseURL+AuthServiceLoginProcedure, opts...),
		logout: connect.NewClient[LogoutRequest, LogoutResponse](httpClient, baseURL+AuthServiceLogoutProcedure, opts...),
	}
}

func (c *AuthServiceClient) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *AuthServiceClient) Logout(ctx context.Context, req *connect.Request[LogoutRequest]) (*connect.Response[LogoutResponse], error) {
	return c.logout.CallUnary(ctx, req)
}

// ReturnServiceClient calls ReturnService.
type ReturnServiceClient struct {
	startReturn  *connect.Client[StartReturnRequest, StartReturnResponse]
	editFields   *connect.Client[EditFieldsRequest, EditFieldsResponse]
	getReturn    *connect.Client[GetReturnRequest, GetReturnResponse]
	navigate     *connect.Client[NavigateRequest, NavigateResponse]
	saveReturn   *connect.Client[SaveReturnRequest, SaveReturnResponse]
	loadReturn   *connect.Client[LoadReturnRequest, LoadReturnResponse]
	deleteReturn *connect.Client[DeleteReturnRequest, DeleteReturnResponse]
	getSummary   *connect.Client[GetSummaryRequest, GetSummaryResponse]
	runPreCheck  *connect.Client[RunPreCheckRequest, RunPreCheckResponse]
	listCounties *connect.Client[ListCountiesRequest, ListCountiesResponse]
}

// NewReturnServiceClient constructs a client for ReturnService.
func NewReturnServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ReturnServiceClient {
	opts = clientOptions(opts)
	return &ReturnServiceClient{
		startReturn:  connect.NewClient[StartReturnRequest, StartReturnResponse](httpClient, baseURL+ReturnServiceStartReturnProcedure, opts...),
		editFields:   connect.NewClient[EditFieldsRequest, EditFieldsResponse](httpClient, baseURL+ReturnServiceEditFieldsProcedure, opts...),
		getReturn:    connect.NewClient[GetReturnRequest, GetReturnResponse](httpClient, baseURL+ReturnServiceGetReturnProcedure, opts...),
		navigate:     connect.NewClient[NavigateRequest, NavigateResponse](httpClient, baseURL+ReturnServiceNavigateProcedure, opts...),
		saveReturn:   connect.NewClient[SaveReturnRequest, SaveReturnResponse](httpClient, baseURL+ReturnServiceSaveReturnProcedure, opts...),
		loadReturn:   connect.NewClient[LoadReturnRequest, LoadReturnResponse](httpClient, baseURL+ReturnServiceLoadReturnProcedure, opts...),
		deleteReturn: connect.NewClient[DeleteReturnRequest, DeleteReturnResponse](httpClient, baseURL+ReturnServiceDeleteReturnProcedure, opts...),
		getSummary:   connect.NewClient[GetSummaryRequest, GetSummaryResponse](httpClient, baseURL+ReturnServiceGetSummaryProcedure, opts...),
		runPreCheck:  connect.NewClient[RunPreCheckRequest, RunPreCheckResponse](httpClient, baseURL+ReturnServiceRunPreCheckProcedure, opts...),
		listCounties: connect.NewClient[ListCountiesRequest, ListCountiesResponse](httpClient, baseURL+ReturnServiceListCountiesProcedure, opts...),
	}
}

func (c *ReturnServiceClient) StartReturn(ctx context.Context, req *connect.Request[StartReturnRequest]) (*connect.Response[StartReturnResponse], error) {
	return c.startReturn.CallUnary(ctx, req)
}

func (c *ReturnServiceClient) EditFields(ctx context.Context, req *connect.Request[EditFieldsRequest]) (*connect.Response[EditFieldsResponse], error) {
	return c.editFields.CallUnary(ctx, req)
}

func (c *ReturnServiceClient) GetReturn(ctx context.Context, req *connect.Request[GetReturnRequest]) (*connect.Response[GetReturnResponse], error) {
	return c.getReturn.CallUnary(ctx, req)
}

func (c *ReturnServiceClient) Navigate(ctx context.Context, req *connect.Request[NavigateRequest]) (*connect.Response[NavigateResponse], error) {
	return c.navigate.CallUnary(ctx, req)
}

func (c *ReturnServiceClient) SaveReturn(ctx context.Context, req *connect.Request[SaveReturnRequest]) (*connect.Response[SaveReturnResponse], error) {
	return c.saveReturn.CallUnary(ctx, req)
}

func (c *ReturnServiceClient) LoadReturn(ctx context.Context, req *connect.Request[LoadReturnRequest]) (*connect.Response[LoadReturnResponse], error) {
	return c.loadReturn.CallUnary(ctx, req)
}

func (c *ReturnServiceClient) DeleteReturn(ctx context.Context, req *connect.Request[DeleteReturnRequest]) (*connect.Response[DeleteReturnResponse], error) {
	return c.deleteReturn.CallUnary(ctx, req)
}

func (c *ReturnServiceClient) GetSummary(ctx context.Context, req *connect.Request[GetSummaryRequest]) (*connect.Response[GetSummaryResponse], error) {
	return c.getSummary.CallUnary(ctx, req)
}

func (c *ReturnServiceClient) RunPreCheck(ctx context.Context, req *connect.Request[RunPreCheckRequest]) (*connect.Response[RunPreCheckResponse], error) {
	return c.runPreCheck.CallUnary(ctx, req)
}

func (c *ReturnServiceClient) ListCounties(ctx context.Context, req *connect.Request[ListCountiesRequest]) (*connect.Response[ListCountiesResponse], error) {
	return c.listCounties.CallUnary(ctx, req)
}

// AssistantServiceClient calls AssistantService.
type AssistantServiceClient struct {
	ask    *connect.Client[AskRequest, AskResponse]
	search *connect.Client[SearchRequest, SearchResponse]
}

// NewAssistantServiceClient constructs a client for AssistantService.
func NewAssistantServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AssistantServiceClient {
	opts = clientOptions(opts)
	return &AssistantServiceClient{
		ask:    connect.NewClient[AskRequest, AskResponse](httpClient, baseURL+AssistantServiceAskProcedure, opts...),
		search: connect.NewClient[SearchRequest, SearchResponse](httpClient, baseURL+AssistantServiceSearchProcedure, opts...),
	}
}

func (c *AssistantServiceClient) Ask(ctx context.Context, req *connect.Request[AskRequest]) (*connect.Response[AskResponse], error) {
	return c.ask.CallUnary(ctx, req)
}

func (c *AssistantServiceClient) Search(ctx context.Context, req *connect.Request[SearchRequest]) (*connect.Response[SearchResponse], error) {
	return c.search.CallUnary(ctx, req)
}
