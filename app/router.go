package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthCheckHandler)

	// search engine
	router.HandlerFunc(http.MethodGet, "/v1/search", app.searchHandler)

	// comment service
	router.HandlerFunc(http.MethodGet, "/v1/posts/:slug/comments", app.getThreadHandler)
	router.HandlerFunc(http.MethodPost, "/v1/posts/:slug/comments", app.createCommentHandler)
	router.HandlerFunc(http.MethodPut, "/v1/comments/:id", app.editCommentHandler)
	router.HandlerFunc(http.MethodDelete, "/v1/comments/:id", app.deleteCommentHandler)

	// counter service
	router.HandlerFunc(http.MethodGet, "/v1/posts/:slug/likes", app.getLikeStatusHandler)
	router.HandlerFunc(http.MethodPost, "/v1/posts/:slug/likes", app.toggleLikeHandler)
	router.HandlerFunc(http.MethodPost, "/v1/posts/:slug/views", app.incrementViewHandler)
	router.HandlerFunc(http.MethodGet, "/v1/posts/:slug/downloads", app.getDownloadCountHandler)
	router.HandlerFunc(http.MethodPost, "/v1/posts/:slug/downloads", app.incrementDownloadHandler)

	return app.recoverPanic(app.logRequest(app.rateLimit(router)))
}
