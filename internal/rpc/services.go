package rpc

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

const (
	AuthServiceName      = "taxwiser.v1.AuthService"
	ReturnServiceName    = "taxwiser.v1.ReturnService"
	AssistantServiceName = "taxwiser.v1.AssistantService"
)

// Procedure paths.
const (
	AuthServiceLoginProcedure  = "/" + AuthServiceName + "/Login"
	AuthServiceLogoutProcedure = "/" + AuthServiceName + "/Logout"

	ReturnServiceStartReturnProcedure  = "/" + ReturnServiceName + "/StartReturn"
	ReturnServiceEditFieldsProcedure   = "/" + ReturnServiceName + "/EditFields"
	ReturnServiceGetReturnProcedure    = "/" + ReturnServiceName + "/GetReturn"
	ReturnServiceNavigateProcedure     = "/" + ReturnServiceName + "/Navigate"
	ReturnServiceSaveReturnProcedure   = "/" + ReturnServiceName + "/SaveReturn"
	ReturnServiceLoadReturnProcedure   = "/" + ReturnServiceName + "/LoadReturn"
	ReturnServiceDeleteReturnProcedure = "/" + ReturnServiceName + "/DeleteReturn"
	ReturnServiceGetSummaryProcedure   = "/" + ReturnServiceName + "/GetSummary"
	ReturnServiceRunPreCheckProcedure  = "/" + ReturnServiceName + "/RunPreCheck"
	ReturnServiceListCountiesProcedure = "/" + ReturnServiceName + "/ListCounties"

	AssistantServiceAskProcedure    = "/" + AssistantServiceName + "/Ask"
	AssistantServiceSearchProcedure = "/" + AssistantServiceName + "/Search"
)

// IsProcedure reports whether an HTTP path belongs to one of the services.
func IsProcedure(path string) bool {
	return strings.HasPrefix(path, "/taxwiser.v1.")
}

// AuthServiceHandler is implemented by the sign-in service.
type AuthServiceHandler interface {
	Login(context.Context, *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error)
	Logout(context.Context, *connect.Request[LogoutRequest]) (*connect.Response[LogoutResponse], error)
}

// ReturnServiceHandler is implemented by the return-editing service.
type ReturnServiceHandler interface {
	StartReturn(context.Context, *connect.Request[StartReturnRequest]) (*connect.Response[StartReturnResponse], error)
	EditFields(context.Context, *connect.Request[EditFieldsRequest]) (*connect.Response[EditFieldsResponse], error)
	GetReturn(context.Context, *connect.Request[GetReturnRequest]) (*connect.Response[GetReturnResponse], error)
	Navigate(context.Context, *connect.Request[NavigateRequest]) (*connect.Response[NavigateResponse], error)
	SaveReturn(context.Context, *connect.Request[SaveReturnRequest]) (*connect.Response[SaveReturnResponse], error)
	LoadReturn(context.Context, *connect.Request[LoadReturnRequest]) (*connect.Response[LoadReturnResponse], error)
	DeleteReturn(context.Context, *connect.Request[DeleteReturnRequest]) (*connect.Response[DeleteReturnResponse], error)
	GetSummary(context.Context, *connect.Request[GetSummaryRequest]) (*connect.Response[GetSummaryResponse], error)
	RunPreCheck(context.Context, *connect.Request[RunPreCheckRequest]) (*connect.Response[RunPreCheckResponse], error)
	ListCounties(context.Context, *connect.Request[ListCountiesRequest]) (*connect.Response[ListCountiesResponse], error)
}

// AssistantServiceHandler is implemented by the help assistant.
type AssistantServiceHandler interface {
	Ask(context.Context, *connect.Request[AskRequest]) (*connect.Response[AskResponse], error)
	Search(context.Context, *connect.Request[SearchRequest]) (*connect.Response[SearchResponse], error)
}

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
}

// route dispatches a service's procedures to their handlers.
func route(service string, handlers map[string]http.Handler) (string, http.Handler) {
	return "/" + service + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}

// NewAuthServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and
// the handler itself.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return route(AuthServiceName, map[string]http.Handler{
		AuthServiceLoginProcedure:  connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, opts...),
		AuthServiceLogoutProcedure: connect.NewUnaryHandler(AuthServiceLogoutProcedure, svc.Logout, opts...),
	})
}

// NewReturnServiceHandler builds an HTTP handler from the service
// implementation.
func NewReturnServiceHandler(svc ReturnServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return route(ReturnServiceName, map[string]http.Handler{
		ReturnServiceStartReturnProcedure:  connect.NewUnaryHandler(ReturnServiceStartReturnProcedure, svc.StartReturn, opts...),
		ReturnServiceEditFieldsProcedure:   connect.NewUnaryHandler(ReturnServiceEditFieldsProcedure, svc.EditFields, opts...),
		ReturnServiceGetReturnProcedure:    connect.NewUnaryHandler(ReturnServiceGetReturnProcedure, svc.GetReturn, opts...),
		ReturnServiceNavigateProcedure:     connect.NewUnaryHandler(ReturnServiceNavigateProcedure, svc.Navigate, opts...),
		ReturnServiceSaveReturnProcedure:   connect.NewUnaryHandler(ReturnServiceSaveReturnProcedure, svc.SaveReturn, opts...),
		ReturnServiceLoadReturnProcedure:   connect.NewUnaryHandler(ReturnServiceLoadReturnProcedure, svc.LoadReturn, opts...),
		ReturnServiceDeleteReturnProcedure: connect.NewUnaryHandler(ReturnServiceDeleteReturnProcedure, svc.DeleteReturn, opts...),
		ReturnServiceGetSummaryProcedure:   connect.NewUnaryHandler(ReturnServiceGetSummaryProcedure, svc.GetSummary, opts...),
		ReturnServiceRunPreCheckProcedure:  connect.NewUnaryHandler(ReturnServiceRunPreCheckProcedure, svc.RunPreCheck, opts...),
		ReturnServiceListCountiesProcedure: connect.NewUnaryHandler(ReturnServiceListCountiesProcedure, svc.ListCounties, opts...),
	})
}

// NewAssistantServiceHandler builds an HTTP handler from the service
// implementation.
func NewAssistantServiceHandler(svc AssistantServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return route(AssistantServiceName, map[string]http.Handler{
		AssistantServiceAskProcedure:    connect.NewUnaryHandler(AssistantServiceAskProcedure, svc.Ask, opts...),
		AssistantServiceSearchProcedure: connect.NewUnaryHandler(AssistantServiceSearchProcedure, svc.Search, opts...),
	})
}
