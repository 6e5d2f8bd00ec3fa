package routerhelper

import (
	"net/http"
	"path"

	"github.com/julienschmidt/httprouter"
)

// RouteGroup registers routes on an httprouter.Router under a common path prefix.
type RouteGroup struct {
	r *httprouter.Router
	p string
}

func NewRouteGroup(r *httprouter.Router, p string) *RouteGroup {
	return &RouteGroup{r: r, p: p}
}

func (g *RouteGroup) NewGroup(p string) *RouteGroup {
	return NewRouteGroup(g.r, g.subPath(p))
}

func (g *RouteGroup) Handle(method, p string, handle httprouter.Handle) {
	g.r.Handle(method, g.subPath(p), handle)
}

func (g *RouteGroup) Handler(method, p string, handler http.Handler) {
	g.r.Handler(method, g.subPath(p), handler)
}

func (g *RouteGroup) HandlerFunc(method, p string, handler http.HandlerFunc) {
	g.r.HandlerFunc(method, g.subPath(p), handler)
}

func (g *RouteGroup) GET(p string, handle httprouter.Handle) {
	g.Handle(http.MethodGet, p, handle)
}

func (g *RouteGroup) POST(p string, handle httprouter.Handle) {
	g.Handle(http.MethodPost, p, handle)
}

func (g *RouteGroup) DELETE(p string, handle httprouter.Handle) {
	g.Handle(http.MethodDelete, p, handle)
}

func (g *RouteGroup) subPath(p string) string {
	result := path.Join(g.p, p)
	if p != "" && p[len(p)-1] == '/' && result[len(result)-1] != '/' {
		result += "/"
	}
	return result
}
