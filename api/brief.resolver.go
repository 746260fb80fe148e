package api

import (
	"bytes"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

func renderHtml(md string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// GET /brief?date=2025-11-12&format=md
// a stored brief for date is served as is, without a date the brief is
// rendered from the current inputs
func (m ApiHandler) getBrief(c *gin.Context) {
	ctx := requestContext(c)

	var content string
	if date := c.Query("date"); date != "" {
		stored, found, err := m.BriefService.Read(ctx, date)
		if err != nil {
			returnErrorJson(err, c)
			return
		}
		if !found {
			returnErrorJsonCode(fmt.Errorf("no brief for %s", date), c, 404)
			return
		}
		content = stored
	} else {
		rec := m.reconcile(c)
		if rec == nil {
			return
		}
		content = m.BriefService.Render(*rec)
	}

	if c.Query("format") == "md" {
		c.Data(200, "text/markdown; charset=utf-8", []byte(content))
		return
	}

	html, err := renderHtml(content)
	if err != nil {
		returnErrorJson(fmt.Errorf("failed to render brief: %w", err), c)
		return
	}
	c.Data(200, "text/html; charset=utf-8", []byte(html))
}

func (m ApiHandler) writeBrief(c *gin.Context) {
	rec := m.reconcile(c)
	if rec == nil {
		return
	}

	path, err := m.BriefService.Write(requestContext(c), *rec)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, gin.H{
		"date": rec.Date,
		"path": path,
	})
}

func (m ApiHandler) bundle(c *gin.Context) {
	rec := m.reconcile(c)
	if rec == nil {
		return
	}

	path, err := m.BundleService.Bundle(requestContext(c), *rec)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, gin.H{
		"runID": rec.RunID,
		"path":  path,
	})
}
