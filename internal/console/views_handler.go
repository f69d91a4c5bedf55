package console

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jayeuse/Inventory-System-sub000/internal/alerts"
	"github.com/jayeuse/Inventory-System-sub000/internal/catalog"
	"github.com/jayeuse/Inventory-System-sub000/internal/dashboard"
	"github.com/jayeuse/Inventory-System-sub000/internal/export"
	"github.com/jayeuse/Inventory-System-sub000/internal/listview"
	"github.com/jayeuse/Inventory-System-sub000/pkg/roles"
	"github.com/jayeuse/Inventory-System-sub000/pkg/security"
	"go.uber.org/zap"
)

type resourceInfo struct {
	Name    string                `json:"name"`
	Title   string                `json:"title"`
	Filters []listview.FilterInfo `json:"filters"`
	Archive bool                  `json:"archive"`
}

func (h *Handler) me(c *gin.Context) {
	c.JSON(http.StatusOK, currentSession(c).User())
}

// resources lists the views the caller's role may open.
func (h *Handler) resources(c *gin.Context) {
	cat := currentSession(c).Services.Catalog
	var out []resourceInfo
	for _, name := range cat.Names() {
		if !security.IsAllowed(c, cat.RequiredRole(name)) {
			continue
		}
		res, _ := cat.Resource(name)
		_, archivable := cat.Archiver(name)
		out = append(out, resourceInfo{Name: name, Title: res.Title(), Filters: res.Filters(), Archive: archivable})
	}
	c.JSON(http.StatusOK, out)
}

// resolve returns the requested resource after the role check, writing the
// error response itself when it fails.
func (h *Handler) resolve(c *gin.Context, cat *catalog.Catalog) (listview.Resource, bool) {
	name := c.Param("resource")
	res, err := cat.Resource(name)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown list", "details": err.Error()})
		return nil, false
	}
	if !security.IsAllowed(c, cat.RequiredRole(name)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden: insufficient permissions"})
		return nil, false
	}
	return res, true
}

// queryFrom reads search, page and the resource's own filter names.
func queryFrom(c *gin.Context, res listview.Resource) listview.Query {
	q := listview.Query{Search: c.Query("search"), Filters: map[string]string{}}
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		q.Page = page
	}
	for _, filter := range res.Filters() {
		if value, ok := c.GetQuery(filter.Name); ok {
			q.Filters[filter.Name] = value
		}
	}
	return q
}

func (h *Handler) view(c *gin.Context) {
	session := currentSession(c)
	res, ok := h.resolve(c, session.Services.Catalog)
	if !ok {
		return
	}

	table, err := res.Table(c.Request.Context(), queryFrom(c, res), c.DefaultQuery("pad", "true") != "false")
	if err != nil {
		h.fail(c, "Failed to load "+res.Title(), err)
		return
	}
	c.JSON(http.StatusOK, table)
}

func (h *Handler) export(c *gin.Context) {
	session := currentSession(c)
	res, ok := h.resolve(c, session.Services.Catalog)
	if !ok {
		return
	}

	format, err := export.ParseFormat(c.DefaultQuery("format", string(export.FormatCSV)))
	if err == nil && format == export.FormatSheets {
		err = fmt.Errorf("%w: sheets exports run from the CLI", export.ErrUnsupported)
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported export format", "details": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := res.Export(c.Request.Context(), queryFrom(c, res), format, &buf); err != nil {
		session.Notifier.Error("Failed to export " + res.Title())
		h.fail(c, "Failed to export "+res.Title(), err)
		return
	}

	filename := export.Filename(res.Name(), format, h.now())
	session.Notifier.Success(fmt.Sprintf("%s exported as %s", res.Title(), filename))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

func (h *Handler) alerts(c *gin.Context) {
	session := currentSession(c)
	resp, err := session.Services.Alerts.Fetch(c.Request.Context())
	if err != nil {
		h.fail(c, "Failed to load alerts", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary": resp.Summary,
		"badge":   alerts.BadgeText(resp.Summary.Total),
		"alerts":  alerts.Filter(resp.Alerts, c.DefaultQuery("type", alerts.FilterAll)),
	})
}

func (h *Handler) dashboard(c *gin.Context) {
	top, err := strconv.Atoi(c.DefaultQuery("top", strconv.Itoa(dashboard.DefaultTopSuppliers)))
	if err != nil || top <= 0 {
		top = dashboard.DefaultTopSuppliers
	}
	c.JSON(http.StatusOK, currentSession(c).Services.Dashboard.Snapshot(c.Request.Context(), top))
}

func (h *Handler) notifications(c *gin.Context) {
	session := currentSession(c)
	c.JSON(http.StatusOK, gin.H{
		"active": session.Notifier.Active(),
		"events": session.Feed.Events(),
	})
}

func (h *Handler) dismissNotification(c *gin.Context) {
	if !currentSession(c).Notifier.Dismiss(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

type archiveRequest struct {
	Reason string `json:"reason"`
}

// archive handles both directions; settings mutations need Staff.
func (h *Handler) archive(archiving bool) gin.HandlerFunc {
	verb := "unarchived"
	if archiving {
		verb = "archived"
	}
	return func(c *gin.Context) {
		if !security.IsAllowed(c, roles.Staff) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden: insufficient permissions"})
			return
		}

		session := currentSession(c)
		name, id := c.Param("resource"), c.Param("id")
		archiver, ok := session.Services.Catalog.Archiver(name)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("%s records cannot be archived", name)})
			return
		}

		var req archiveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
			return
		}

		ctx := c.Request.Context()
		var err error
		if archiving {
			err = archiver.Archive(ctx, id, req.Reason)
		} else {
			err = archiver.Unarchive(ctx, id, req.Reason)
		}
		if err != nil {
			session.Notifier.Error(fmt.Sprintf("Failed to update %s", id))
			h.fail(c, "Failed to update "+name, err)
			return
		}

		message := fmt.Sprintf("%s %s successfully", id, verb)
		session.Notifier.Success(message)
		h.logger.Info("Console archive action",
			zap.String("resource", name),
			zap.String("id", id),
			zap.Bool("archived", archiving),
			zap.String("username", c.GetString(security.ContextUsername)),
		)
		c.JSON(http.StatusOK, gin.H{"message": message})
	}
}

func (h *Handler) logout(c *gin.Context) {
	session := currentSession(c)
	if err := session.Services.Auth.Logout(c.Request.Context()); err != nil {
		h.logger.Warn("Backend logout failed", zap.String("session_id", session.ID), zap.Error(err))
	}
	h.sessions.Delete(session.ID)
	c.Status(http.StatusNoContent)
}
