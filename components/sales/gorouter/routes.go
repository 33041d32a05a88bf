package gorouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-ferry-admin/components/sales"
	"github.com/goliatone/go-ferry-admin/components/sales/commands"
	"github.com/goliatone/go-ferry-admin/components/sales/httpapi"
	"github.com/goliatone/go-ferry-admin/components/sales/queries"
)

// ActorResolver converts a request into the actor recorded on commands.
type ActorResolver func(RequestContext) commands.Actor

// RequestContext is the slice of router.Context used by the sales routes.
type RequestContext interface {
	Context() context.Context
	Body() []byte
	Param(name string, defaultValue ...string) string
	Query(name string, defaultValue ...string) string
	Header(name string) string
	Locals(key any, value ...any) any
	SetHeader(key, value string) router.Context
	Send(body []byte) error
	JSON(code int, v any) error
}

// Config wires go-router with the sales controller, API and broadcast hook.
type Config[T any] struct {
	Router        router.Router[T]
	Controller    *sales.Controller
	API           httpapi.Executor
	Broadcast     *sales.BroadcastHook
	Translator    sales.TranslationService
	ActorResolver ActorResolver
	BasePath      string
	Routes        RouteConfig
}

// RouteConfig customizes the relative paths used for sales endpoints.
type RouteConfig struct {
	HTML      string
	View      string
	Load      string
	Filter    string
	Sort      string
	Select    string
	Page      string
	Delete    string
	Create    string
	SaleID    string
	Summary   string
	Chart     string
	Report    string
	Download  string
	WebSocket string
}

// routeGroup is the part of router.Router used to mount handlers.
type routeGroup interface {
	Get(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Post(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Put(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	WebSocket(path string, cfg router.WebSocketConfig, handler func(router.WebSocketContext) error) router.RouteInfo
}

// Register mounts sales routes (HTML, JSON, REST, WebSocket) on a go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("gorouter: controller is required")
	}
	base := cfg.BasePath
	if base == "" {
		base = "/admin"
	}
	mount(cfg.Router.Group(base), cfg.handlers(), defaultRouteConfig(cfg.Routes))
	return nil
}

func (cfg Config[T]) handlers() *handlers {
	resolver := cfg.ActorResolver
	if resolver == nil {
		resolver = defaultActorResolver
	}
	return &handlers{
		controller: cfg.Controller,
		api:        cfg.API,
		broadcast:  cfg.Broadcast,
		translator: cfg.Translator,
		actor:      resolver,
	}
}

func mount(r routeGroup, h *handlers, routes RouteConfig) {
	r.Get(routes.HTML, wrap(h.page))
	r.Get(routes.View, wrap(h.view))

	if h.api != nil {
		r.Post(routes.Load, wrap(h.load))
		r.Post(routes.Filter, wrap(h.filter))
		r.Post(routes.Sort, wrap(h.sort))
		r.Post(routes.Select, wrap(h.selectRows))
		r.Post(routes.Page, wrap(h.changePage))
		r.Post(routes.Delete, wrap(h.delete))
		r.Post(routes.Create, wrap(h.create))
		r.Put(routes.SaleID, wrap(h.update))
		r.Get(routes.Summary, wrap(h.summary))
		r.Get(routes.Chart, wrap(h.chart))
		r.Post(routes.Report, wrap(h.report))
		r.Get(routes.Download, wrap(h.download))
	}

	if h.broadcast != nil {
		registerWebSocket(r, h.broadcast, routes.WebSocket)
	}
}

func wrap(fn func(RequestContext) error) router.HandlerFunc {
	return router.WrapHandler(func(ctx router.Context) error {
		return fn(ctx)
	})
}

type handlers struct {
	controller *sales.Controller
	api        httpapi.Executor
	broadcast  *sales.BroadcastHook
	translator sales.TranslationService
	actor      ActorResolver
}

func (h *handlers) page(ctx RequestContext) error {
	var buf bytes.Buffer
	if err := h.controller.RenderPage(ctx.Context(), &buf); err != nil {
		return respondError(ctx, http.StatusInternalServerError, err)
	}
	ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
	return ctx.Send(buf.Bytes())
}

func (h *handlers) view(ctx RequestContext) error {
	return h.respondView(ctx, http.StatusOK)
}

func (h *handlers) load(ctx RequestContext) error {
	var payload commands.LoadSalesInput
	if err := decode(ctx, &payload); err != nil {
		return respondError(ctx, http.StatusBadRequest, err)
	}
	payload.Actor = h.actor(ctx)
	if err := h.api.Load(ctx.Context(), payload); err != nil {
		return h.fail(ctx, sales.OpLoad, err)
	}
	return h.respondView(ctx, http.StatusOK)
}

func (h *handlers) filter(ctx RequestContext) error {
	var payload commands.SetFilterInput
	if err := decode(ctx, &payload); err != nil {
		return respondError(ctx, http.StatusBadRequest, err)
	}
	if err := h.api.Filter(ctx.Context(), payload); err != nil {
		return h.fail(ctx, sales.OpLoad, err)
	}
	return h.respondView(ctx, http.StatusOK)
}

func (h *handlers) sort(ctx RequestContext) error {
	var payload commands.SortInput
	if err := decode(ctx, &payload); err != nil {
		return respondError(ctx, http.StatusBadRequest, err)
	}
	if err := h.api.Sort(ctx.Context(), payload); err != nil {
		return h.fail(ctx, sales.OpLoad, err)
	}
	return h.respondView(ctx, http.StatusOK)
}

func (h *handlers) selectRows(ctx RequestContext) error {
	var payload commands.SelectRowsInput
	if err := decode(ctx, &payload); err != nil {
		return respondError(ctx, http.StatusBadRequest, err)
	}
	if err := h.api.Select(ctx.Context(), payload); err != nil {
		return h.fail(ctx, sales.OpLoad, err)
	}
	return h.respondView(ctx, http.StatusOK)
}

func (h *handlers) changePage(ctx RequestContext) error {
	var payload commands.ChangePageInput
	if err := decode(ctx, &payload); err != nil {
		return respondError(ctx, http.StatusBadRequest, err)
	}
	if err := h.api.Page(ctx.Context(), payload); err != nil {
		return h.fail(ctx, sales.OpLoad, err)
	}
	return h.respondView(ctx, http.StatusOK)
}

func (h *handlers) delete(ctx RequestContext) error {
	var payload commands.DeleteSalesInput
	if err := decode(ctx, &payload); err != nil {
		return respondError(ctx, http.StatusBadRequest, err)
	}
	payload.Actor = h.actor(ctx)
	if err := h.api.Delete(ctx.Context(), payload); err != nil {
		return h.fail(ctx, sales.OpDelete, err)
	}
	return h.respondView(ctx, http.StatusOK)
}

func (h *handlers) create(ctx RequestContext) error {
	var sale sales.SaleInput
	if err := decode(ctx, &sale); err != nil {
		return respondError(ctx, http.StatusBadRequest, err)
	}
	input := commands.SaveSaleInput{Sale: sale, Actor: h.actor(ctx)}
	if err := h.api.Create(ctx.Context(), input); err != nil {
		return h.fail(ctx, sales.OpCreate, err)
	}
	return h.respondView(ctx, http.StatusCreated)
}

func (h *handlers) update(ctx RequestContext) error {
	raw := ctx.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return respondError(ctx, http.StatusBadRequest, fmt.Errorf("sale id %q is invalid", raw))
	}
	var sale sales.SaleInput
	if err := decode(ctx, &sale); err != nil {
		return respondError(ctx, http.StatusBadRequest, err)
	}
	input := commands.SaveSaleInput{ID: id, Sale: sale, Actor: h.actor(ctx)}
	if err := h.api.Update(ctx.Context(), input); err != nil {
		return h.fail(ctx, sales.OpUpdate, err)
	}
	return h.respondView(ctx, http.StatusOK)
}

func (h *handlers) summary(ctx RequestContext) error {
	out, err := h.api.Summary(ctx.Context(), queries.SummaryInput{Window: sales.Window(ctx.Query("window"))})
	if err != nil {
		return h.fail(ctx, sales.OpLoad, err)
	}
	return ctx.JSON(http.StatusOK, out)
}

func (h *handlers) chart(ctx RequestContext) error {
	out, err := h.api.Summary(ctx.Context(), queries.SummaryInput{Window: sales.Window(ctx.Query("window"))})
	if err != nil {
		return h.fail(ctx, sales.OpLoad, err)
	}
	ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
	return ctx.Send([]byte(out.ChartHTML))
}

func (h *handlers) report(ctx RequestContext) error {
	var payload queries.ReportInput
	if err := decode(ctx, &payload); err != nil {
		return respondError(ctx, http.StatusBadRequest, err)
	}
	file, err := h.api.Report(ctx.Context(), payload)
	if err != nil {
		return h.fail(ctx, sales.OpDownload, err)
	}
	return sendFile(ctx, file)
}

func (h *handlers) download(ctx RequestContext) error {
	file, err := h.api.Download(ctx.Context(), queries.DownloadInput{Format: ctx.Query("format")})
	if err != nil {
		return h.fail(ctx, sales.OpDownload, err)
	}
	return sendFile(ctx, file)
}

func (h *handlers) respondView(ctx RequestContext, status int) error {
	var (
		view sales.GridView
		err  error
	)
	if h.api != nil {
		view, err = h.api.View(ctx.Context())
	} else {
		view, err = h.controller.ViewPayload(ctx.Context())
	}
	if err != nil {
		return h.fail(ctx, sales.OpLoad, err)
	}
	return ctx.JSON(status, view)
}

func (h *handlers) fail(ctx RequestContext, op sales.Operation, err error) error {
	payload := httpapi.NewErrorPayload(ctx.Context(), h.translator, op, inferLocale(ctx), err)
	return ctx.JSON(httpapi.StatusFor(err), payload)
}

func registerWebSocket(r routeGroup, hook *sales.BroadcastHook, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		events, cancel := hook.Subscribe()
		defer cancel()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

func sendFile(ctx RequestContext, file sales.File) error {
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	ctx.SetHeader("Content-Type", contentType)
	ctx.SetHeader("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	return ctx.Send(file.Data)
}

func decode(ctx RequestContext, target any) error {
	body := ctx.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	return json.Unmarshal(body, target)
}

func defaultActorResolver(ctx RequestContext) commands.Actor {
	var actor commands.Actor
	if v, ok := ctx.Locals("user_id").(string); ok {
		actor.UserID = v
		actor.ActorID = v
	}
	if v, ok := ctx.Locals("actor_id").(string); ok && v != "" {
		actor.ActorID = v
	}
	if v, ok := ctx.Locals("tenant_id").(string); ok {
		actor.TenantID = v
	}
	return actor
}

func inferLocale(ctx RequestContext) string {
	if locale, ok := ctx.Locals("locale").(string); ok && locale != "" {
		return locale
	}
	if locale := strings.TrimSpace(ctx.Query("locale")); locale != "" {
		return strings.ToLower(locale)
	}
	if header := ctx.Header("Accept-Language"); header != "" {
		return httpapi.ParseAcceptLanguage(header)
	}
	return ""
}

func respondError(ctx RequestContext, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.HTML == "" {
		routes.HTML = "/sales"
	}
	if routes.View == "" {
		routes.View = "/sales/_view"
	}
	if routes.Load == "" {
		routes.Load = "/sales/load"
	}
	if routes.Filter == "" {
		routes.Filter = "/sales/filter"
	}
	if routes.Sort == "" {
		routes.Sort = "/sales/sort"
	}
	if routes.Select == "" {
		routes.Select = "/sales/select"
	}
	if routes.Page == "" {
		routes.Page = "/sales/page"
	}
	if routes.Delete == "" {
		routes.Delete = "/sales/delete"
	}
	if routes.Create == "" {
		routes.Create = "/sales"
	}
	if routes.SaleID == "" {
		routes.SaleID = "/sales/:id"
	}
	if routes.Summary == "" {
		routes.Summary = "/sales/summary"
	}
	if routes.Chart == "" {
		routes.Chart = "/sales/chart"
	}
	if routes.Report == "" {
		routes.Report = "/sales/report"
	}
	if routes.Download == "" {
		routes.Download = "/sales/download"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/sales/ws"
	}
	return routes
}
