// Package api serves the search form, the search endpoint, and the export
// downloads.
package api

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/david/sam-finder/internal/config"
	"github.com/david/sam-finder/internal/export"
	"github.com/david/sam-finder/internal/sam"
	"github.com/david/sam-finder/internal/transform"
)

//go:embed index.html
var indexHTML string

var indexTmpl = template.Must(template.New("index").Parse(indexHTML))

const (
	xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	fullSheetName    = "All Opportunities"
	visibleSheetName = "Visible Opportunities"
	fullXLSXName     = "samgov_opportunities_full.xlsx"
	fullCSVName      = "samgov_opportunities_full.csv"
	visibleXLSXName  = "samgov.xlsx"
)

// Server holds the search dependencies and the current result. The result
// is last-search-wins: each search replaces it wholesale, and the exports
// always read whatever the latest search produced.
type Server struct {
	Echo    *echo.Echo
	Client  *sam.Client
	Catalog *config.Catalog

	mu      sync.Mutex
	current *transform.Result
}

func NewServer(client *sam.Client, catalog *config.Catalog) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	s := &Server{Echo: e, Client: client, Catalog: catalog}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.Echo.GET("/", s.handleIndex)
	s.Echo.GET("/health", s.handleHealth)

	api := s.Echo.Group("/api/v1")
	api.POST("/search", s.handleSearch)
	api.GET("/export/full.xlsx", s.handleExportFullXLSX)
	api.GET("/export/full.csv", s.handleExportFullCSV)
	api.GET("/export/visible.xlsx", s.handleExportVisibleXLSX)
}

func (s *Server) Start(port string) error {
	return s.Echo.Start(":" + port)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (s *Server) handleIndex(c echo.Context) error {
	var buf bytes.Buffer
	if err := indexTmpl.Execute(&buf, s.Catalog); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

type searchRequest struct {
	PostedFrom   string   `json:"postedFrom" form:"postedFrom"`
	PostedTo     string   `json:"postedTo" form:"postedTo"`
	Limit        int      `json:"limit" form:"limit"`
	NAICSOnly    bool     `json:"naicsOnly" form:"naicsOnly"`
	SetAsides    []string `json:"setAsides" form:"setAsides"`
	DeadlineFrom string   `json:"deadlineFrom" form:"deadlineFrom"`
}

type searchResponse struct {
	SearchID     string     `json:"search_id"`
	TotalRecords int        `json:"total_records"`
	Matched      int        `json:"matched"`
	NoMatches    bool       `json:"no_matches"`
	Message      string     `json:"message,omitempty"`
	Warnings     []string   `json:"warnings,omitempty"`
	Columns      []string   `json:"columns"`
	Rows         [][]string `json:"rows"`
}

func (s *Server) handleSearch(c echo.Context) error {
	var req searchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	from, err := time.Parse("2006-01-02", req.PostedFrom)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Please select both start and end dates."})
	}
	to, err := time.Parse("2006-01-02", req.PostedTo)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Please select both start and end dates."})
	}

	opts := transform.Options{}
	if req.NAICSOnly {
		opts.NAICSPrefix = s.Catalog.NAICSPrefix
	}
	for _, code := range req.SetAsides {
		if !s.Catalog.ValidSetAside(code) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Unknown set-aside code: " + code})
		}
		opts.SetAsides = append(opts.SetAsides, code)
	}
	if req.DeadlineFrom != "" {
		d, err := time.Parse("2006-01-02", req.DeadlineFrom)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid deadline date."})
		}
		opts.DeadlineMin = &d
	}

	params := sam.SearchParams{
		PostedFrom: from,
		PostedTo:   to,
		Limit:      req.Limit,
		PType:      "o",
		SetAside:   serverSideSetAside(opts.SetAsides),
	}

	result, err := s.Client.Search(c.Request().Context(), params)
	if err != nil {
		c.Logger().Errorf("sam search failed: %v", err)
		s.setCurrent(nil)
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "Error making the request: " + err.Error()})
	}

	res := transform.Run(result.Opportunities, opts)
	s.setCurrent(&res)

	resp := searchResponse{
		SearchID:     res.SearchID.String(),
		TotalRecords: result.TotalRecords,
		Matched:      len(res.Visible),
		NoMatches:    res.NoMatches,
		Warnings:     res.Warnings,
		Columns:      []string{},
		Rows:         [][]string{},
	}
	if res.NoMatches {
		resp.Message = noMatchesMessage(res.EmptiedBy)
		return c.JSON(http.StatusOK, resp)
	}

	tbl := transform.BuildDisplay(res.Visible, s.Catalog.DisplayFields, transform.LinksHTML)
	resp.Columns = tbl.Columns
	resp.Rows = tbl.Rows
	return c.JSON(http.StatusOK, resp)
}

// serverSideSetAside returns the one literal code to also apply upstream.
// With several codes (or the blank sentinel) the union can only be computed
// client-side, so the request stays unrestricted.
func serverSideSetAside(codes []string) string {
	if len(codes) == 1 && codes[0] != transform.SetAsideBlank {
		return codes[0]
	}
	return ""
}

func noMatchesMessage(emptiedBy string) string {
	if emptiedBy == "" {
		return "No results found."
	}
	return "No results found after applying the " + emptiedBy + " filter."
}

func (s *Server) setCurrent(res *transform.Result) {
	s.mu.Lock()
	s.current = res
	s.mu.Unlock()
}

func (s *Server) snapshot() *transform.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *Server) handleExportFullXLSX(c echo.Context) error {
	res := s.snapshot()
	if res == nil {
		return c.JSON(http.StatusConflict, map[string]string{"error": "No search results to export."})
	}
	cols := transform.ExportFields(res.Full, s.Catalog.ExportExclusions)
	data, err := export.Workbook([]export.Sheet{
		export.RecordSheet(fullSheetName, res.Full, cols, false),
	})
	if err != nil {
		c.Logger().Errorf("full xlsx export failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Export failed."})
	}
	return attachment(c, fullXLSXName, xlsxMIME, data)
}

func (s *Server) handleExportFullCSV(c echo.Context) error {
	res := s.snapshot()
	if res == nil {
		return c.JSON(http.StatusConflict, map[string]string{"error": "No search results to export."})
	}
	cols := transform.ExportFields(res.Full, s.Catalog.ExportExclusions)
	data, err := export.CSV(res.Full, cols)
	if err != nil {
		c.Logger().Errorf("csv export failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Export failed."})
	}
	return attachment(c, fullCSVName, "text/csv", data)
}

func (s *Server) handleExportVisibleXLSX(c echo.Context) error {
	res := s.snapshot()
	if res == nil {
		return c.JSON(http.StatusConflict, map[string]string{"error": "No search results to export."})
	}
	// File output gets raw URLs; the anchor decoration is display-only.
	tbl := transform.BuildDisplay(res.Visible, s.Catalog.DisplayFields, transform.LinksRaw)
	data, err := export.Workbook([]export.Sheet{
		export.TableSheet(visibleSheetName, tbl, true),
	})
	if err != nil {
		c.Logger().Errorf("visible xlsx export failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Export failed."})
	}
	return attachment(c, visibleXLSXName, xlsxMIME, data)
}

func attachment(c echo.Context, name, mime string, data []byte) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Blob(http.StatusOK, mime, data)
}
