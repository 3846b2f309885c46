package ui

import (
	"net/http"

	"feedbacklens/domain/core"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// datasetID parses the :id path parameter, replying 400 on a blank ID.
func datasetID(c *gin.Context) (core.DatasetID, bool) {
	id, err := core.ParseDatasetID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	return id, true
}

func (s *Server) handleListSamples(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"samples": s.service.SampleNames()})
}

func (s *Server) handleUpload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxBody)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart field \"file\" is required"})
		return
	}
	defer file.Close()

	summary, err := s.service.LoadUpload(c.Request.Context(), file, header.Filename)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, summary)
}

func (s *Server) handleLoadSample(c *gin.Context) {
	var body struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must include sample name"})
		return
	}

	summary, err := s.service.LoadSample(c.Request.Context(), body.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, summary)
}

func (s *Server) handleSummary(c *gin.Context) {
	id, ok := datasetID(c)
	if !ok {
		return
	}
	summary, err := s.service.Summary(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (s *Server) handleDrop(c *gin.Context) {
	id, ok := datasetID(c)
	if !ok {
		return
	}
	s.service.Drop(id)
	c.Status(http.StatusNoContent)
}

func (s *Server) handleKPI(c *gin.Context) {
	id, ok := datasetID(c)
	if !ok {
		return
	}
	filter, err := parseFilter(c)
	if err != nil {
		respondError(c, err)
		return
	}
	result, err := s.service.KPI(c.Request.Context(), id, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleTrend(c *gin.Context) {
	id, ok := datasetID(c)
	if !ok {
		return
	}
	filter, err := parseFilter(c)
	if err != nil {
		respondError(c, err)
		return
	}
	rows, summary, err := s.service.Trend(c.Request.Context(), id, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": rows, "summary": summary})
}

func (s *Server) handleSegments(c *gin.Context) {
	id, ok := datasetID(c)
	if !ok {
		return
	}
	filter, err := parseFilter(c)
	if err != nil {
		respondError(c, err)
		return
	}
	rows, err := s.service.Segment(c.Request.Context(), id, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": rows})
}

func (s *Server) handleNegative(c *gin.Context) {
	id, ok := datasetID(c)
	if !ok {
		return
	}
	filter, err := parseFilter(c)
	if err != nil {
		respondError(c, err)
		return
	}

	insights, err := s.service.NegativeInsights(c.Request.Context(), id, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	// The browser view re-sorts and text-filters the records; keyword
	// hotspots always reflect the unbrowsed negative slice.
	records, err := s.service.NegativeSlice(c.Request.Context(), id, filter, parseBrowseOptions(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records, "keywords": insights.Keywords})
}

func (s *Server) handleNegativeExport(c *gin.Context) {
	id, ok := datasetID(c)
	if !ok {
		return
	}
	filter, err := parseFilter(c)
	if err != nil {
		respondError(c, err)
		return
	}
	data, err := s.service.ExportNegativeCSV(c.Request.Context(), id, filter, parseBrowseOptions(c))
	if err != nil {
		respondError(c, err)
		return
	}
	attachmentHeaders(c, "negative_comments.csv")
	c.Data(http.StatusOK, "text/csv", data)
}

func (s *Server) handleFilteredExport(c *gin.Context) {
	id, ok := datasetID(c)
	if !ok {
		return
	}
	filter, err := parseFilter(c)
	if err != nil {
		respondError(c, err)
		return
	}
	data, err := s.service.ExportFilteredCSV(c.Request.Context(), id, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	attachmentHeaders(c, "filtered_feedback.csv")
	c.Data(http.StatusOK, "text/csv", data)
}

func (s *Server) handleOverview(c *gin.Context) {
	id, ok := datasetID(c)
	if !ok {
		return
	}
	filter, err := parseFilter(c)
	if err != nil {
		respondError(c, err)
		return
	}
	ov, err := s.service.Overview(c.Request.Context(), id, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ov)
}

// handleReport serves the markdown insight report, rendered to HTML when
// ?format=html is requested.
func (s *Server) handleReport(c *gin.Context) {
	id, ok := datasetID(c)
	if !ok {
		return
	}
	filter, err := parseFilter(c)
	if err != nil {
		respondError(c, err)
		return
	}
	md, err := s.service.Report(c.Request.Context(), id, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	if c.Query("format") == "html" {
		p := parser.NewWithExtensions(parser.CommonExtensions)
		renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
		c.Data(http.StatusOK, "text/html; charset=utf-8", markdown.ToHTML([]byte(md), p, renderer))
		return
	}
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(md))
}
