package router

import (
	"net/http"
	"slices"
	"strings"

	"github.com/ferdiebergado/goexpress"
)

type Middleware = func(next http.Handler) http.Handler

// Router registers handlers by method and pattern. Patterns follow net/http.ServeMux
// syntax, so path wildcards are read with (*http.Request).PathValue.
type Router interface {
	http.Handler
	Get(pattern string, handler http.HandlerFunc, middlewares ...Middleware)
	Post(pattern string, handler http.HandlerFunc, middlewares ...Middleware)
	Put(pattern string, handler http.HandlerFunc, middlewares ...Middleware)
	Delete(pattern string, handler http.HandlerFunc, middlewares ...Middleware)
	Use(middleware Middleware)
	// Group mounts routes under prefix. They run the parent's middlewares, then the group's.
	Group(prefix string, fn func(r Router), middlewares ...Middleware)
	// Routes lists every mounted "METHOD /path", sorted.
	Routes() []string
}

type goexpressRouter struct {
	mux    *goexpress.Router
	prefix string
	mws    []Middleware
	table  *[]string
}

var _ Router = (*goexpressRouter)(nil)

//nolint:ireturn // callers depend on the Router abstraction.
func NewGoexpressRouter() Router {
	return &goexpressRouter{mux: goexpress.New(), table: new([]string)}
}

// path joins the group prefix and pattern. A group root ("" or "/") matches the bare
// prefix exactly, so it neither redirects nor swallows unknown subpaths.
func (r *goexpressRouter) path(pattern string) string {
	if r.prefix != "" && (pattern == "" || pattern == "/") {
		return r.prefix
	}
	if pattern == "" {
		return "/"
	}
	return r.prefix + pattern
}

func (r *goexpressRouter) handle(method, pattern string, h http.HandlerFunc, mws []Middleware) {
	path := r.path(pattern)
	*r.table = append(*r.table, method+" "+path)
	r.mux.Handle(method+" "+path, h, append(slices.Clone(r.mws), mws...)...)
}

func (r *goexpressRouter) Get(pattern string, h http.HandlerFunc, mws ...Middleware) {
	r.handle(http.MethodGet, pattern, h, mws)
}

func (r *goexpressRouter) Post(pattern string, h http.HandlerFunc, mws ...Middleware) {
	r.handle(http.MethodPost, pattern, h, mws)
}

func (r *goexpressRouter) Put(pattern string, h http.HandlerFunc, mws ...Middleware) {
	r.handle(http.MethodPut, pattern, h, mws)
}

func (r *goexpressRouter) Delete(pattern string, h http.HandlerFunc, mws ...Middleware) {
	r.handle(http.MethodDelete, pattern, h, mws)
}

func (r *goexpressRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Use adds a global middleware. goexpress wraps the whole mux with these, so they
// also run for groups mounted earlier.
func (r *goexpressRouter) Use(mw Middleware) {
	r.mux.Use(mw)
}

func (r *goexpressRouter) Group(prefix string, fn func(r Router), mws ...Middleware) {
	fn(&goexpressRouter{
		mux:    r.mux,
		prefix: r.prefix + strings.TrimSuffix(prefix, "/"),
		mws:    append(slices.Clone(r.mws), mws...),
		table:  r.table,
	})
}

func (r *goexpressRouter) Routes() []string {
	routes := slices.Clone(*r.table)
	slices.SortFunc(routes, func(a, b string) int {
		_, pa, _ := strings.Cut(a, " ")
		_, pb, _ := strings.Cut(b, " ")
		if c := strings.Compare(pa, pb); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return routes
}
