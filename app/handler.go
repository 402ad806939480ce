package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jaehyunkim/engage/internal/commentservice"
	"github.com/jaehyunkim/engage/internal/common"
	"github.com/jaehyunkim/engage/internal/mailservice"
)

const searchLimitDefault = 20

func (app *application) searchHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if strings.TrimSpace(query) == "" {
		app.badRequestErrorResponse(w, r, errors.New("missing search query"))
		return
	}

	locale := app.readLocaleParam(r)
	limit, err := app.readLimitParam(r, searchLimitDefault)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	results, err := app.searchService.Search(r.Context(), locale, query, limit)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"results": results}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) getThreadHandler(w http.ResponseWriter, r *http.Request) {
	slug, err := app.readSlugParam(r)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	key := common.CacheKeyThread(slug)
	if cached, ok := app.cache.Get(key); ok {
		if thread, ok := cached.([]*commentservice.Comment); ok {
			err = app.writeJSON(w, http.StatusOK, envelope{"comments": thread}, nil)
			if err != nil {
				app.serverErrorResponse(w, r, err)
			}
			return
		}
	}

	thread, err := app.commentService.GetThread(r.Context(), slug)
	if err != nil {
		switch {
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.cache.Set(key, thread)

	err = app.writeJSON(w, http.StatusOK, envelope{"comments": thread}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

type createCommentRequest struct {
	Author   string  `json:"author"`
	Email    string  `json:"email"`
	Content  string  `json:"content"`
	ParentID *string `json:"parent_id"`
}

func (app *application) createCommentHandler(w http.ResponseWriter, r *http.Request) {
	slug, err := app.readSlugParam(r)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	var input createCommentRequest
	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	form := &commentservice.CommentFormData{
		Author:  input.Author,
		Email:   input.Email,
		Content: input.Content,
	}

	comment, err := app.commentService.Create(r.Context(), slug, form, input.ParentID)
	if err != nil {
		switch {
		case errors.Is(err, commentservice.ErrParentNotFound):
			app.failedValidationErrorResponse(w, r, map[string]string{"parent_id": "parent comment does not exist"})
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.cache.Delete(common.CacheKeyThread(slug))

	// Notification dispatch is fire-and-forget; a broker outage must not
	// undo a comment that is already stored.
	locale := app.readLocaleParam(r)
	go app.publishCommentNotification(comment, locale)

	err = app.writeJSON(w, http.StatusCreated, envelope{"comment": comment}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

type editCommentRequest struct {
	Email   string `json:"email"`
	Author  string `json:"author"`
	Content string `json:"content"`
}

func (app *application) editCommentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	var input editCommentRequest
	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	form := &commentservice.CommentFormData{
		Author:  input.Author,
		Email:   input.Email,
		Content: input.Content,
	}

	comment, err := app.commentService.Edit(r.Context(), id, input.Email, form)
	if err != nil {
		switch {
		case errors.Is(err, commentservice.ErrNotPermitted), errors.Is(err, common.ErrRecordNotFound):
			app.notPermittedErrorResponse(w, r)
		case errors.Is(err, commentservice.ErrCommentDeleted):
			app.conflictErrorResponse(w, r, "comment has been deleted")
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.cache.Delete(common.CacheKeyThread(comment.Slug))

	err = app.writeJSON(w, http.StatusOK, envelope{"comment": comment}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

type deleteCommentRequest struct {
	Email string `json:"email"`
}

func (app *application) deleteCommentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	var input deleteCommentRequest
	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	slug, err := app.commentService.Delete(r.Context(), id, input.Email)
	if err != nil {
		switch {
		case errors.Is(err, commentservice.ErrNotPermitted), errors.Is(err, common.ErrRecordNotFound):
			app.notPermittedErrorResponse(w, r)
		case errors.Is(err, commentservice.ErrCommentDeleted):
			app.conflictErrorResponse(w, r, "comment has been deleted")
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.cache.Delete(common.CacheKeyThread(slug))

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "comment deleted"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) getLikeStatusHandler(w http.ResponseWriter, r *http.Request) {
	slug, err := app.readSlugParam(r)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	session := app.resolveSession(r)

	status, err := app.counterService.GetLikeStatus(r.Context(), slug, session)
	if err != nil {
		switch {
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"like_count": status.LikeCount, "is_liked": status.IsLiked}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) toggleLikeHandler(w http.ResponseWriter, r *http.Request) {
	slug, err := app.readSlugParam(r)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	locale := app.readLocaleParam(r)
	session := app.resolveSession(r)

	liked, count, err := app.counterService.ToggleLike(r.Context(), locale, slug, session)
	if err != nil {
		switch {
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"liked": liked, "like_count": count}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) incrementViewHandler(w http.ResponseWriter, r *http.Request) {
	slug, err := app.readSlugParam(r)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	locale := app.readLocaleParam(r)

	count, err := app.counterService.IncrementView(r.Context(), locale, slug)
	if err != nil {
		switch {
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"view_count": count}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) getDownloadCountHandler(w http.ResponseWriter, r *http.Request) {
	slug, err := app.readSlugParam(r)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	count, err := app.counterService.GetDownloadCount(r.Context(), slug)
	if err != nil {
		switch {
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"download_count": count}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) incrementDownloadHandler(w http.ResponseWriter, r *http.Request) {
	slug, err := app.readSlugParam(r)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	locale := app.readLocaleParam(r)

	count, err := app.counterService.IncrementDownload(r.Context(), locale, slug)
	if err != nil {
		switch {
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"download_count": count}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

// publishCommentNotification routes a stored comment to the right queue:
// replies notify the parent comment's author (unless they replied to
// themselves), root comments notify the site owner.
func (app *application) publishCommentNotification(comment *commentservice.Comment, locale string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	author := ""
	if comment.Author != nil {
		author = *comment.Author
	}
	content := ""
	if comment.Content != nil {
		content = *comment.Content
	}
	pageURL := app.pageURL(locale, comment.Slug)

	if comment.ParentID == nil {
		msg := mailservice.CommentCreatedMessage{
			Slug:    comment.Slug,
			Author:  author,
			Content: content,
			PageURL: pageURL,
		}
		app.publishNotification(ctx, msg, common.CommentCreatedKey)
		return
	}

	parent, err := app.commentService.GetByID(ctx, *comment.ParentID)
	if err != nil {
		app.logger.Error("could not load parent comment for notification", slog.String("error", err.Error()))
		return
	}

	// Deleted parents have no author or recipient left to notify, and
	// self-replies should not email the author about their own comment.
	if parent.IsDeleted || strings.EqualFold(strings.TrimSpace(parent.Email), strings.TrimSpace(comment.Email)) {
		return
	}

	parentAuthor := ""
	if parent.Author != nil {
		parentAuthor = *parent.Author
	}
	parentContent := ""
	if parent.Content != nil {
		parentContent = *parent.Content
	}

	msg := mailservice.CommentRepliedMessage{
		Slug:            comment.Slug,
		ReplyAuthor:     author,
		ReplyContent:    content,
		OriginalAuthor:  parentAuthor,
		OriginalContent: parentContent,
		Recipient:       parent.Email,
		PageURL:         pageURL,
	}
	app.publishNotification(ctx, msg, common.CommentRepliedKey)
}

func (app *application) publishNotification(ctx context.Context, msg any, key common.BindingKey) {
	body, err := json.Marshal(msg)
	if err != nil {
		app.logger.Error("could not marshal notification message", slog.String("error", err.Error()))
		return
	}

	err = app.publisher.Publish(ctx, body, key, common.CommentExchange)
	if err != nil {
		app.logger.Error("could not publish notification message", slog.String("error", err.Error()))
	}
}
