package ui

import (
	"fmt"
	"html/template"
	"net/http"
	"strings"

	domain "fitlab/domain/playground"
	"fitlab/internal/errors"
	"fitlab/internal/fit"
	"fitlab/internal/playground"
	"fitlab/internal/synth"

	"github.com/gin-gonic/gin"
)

// snapshotResponse is a snapshot plus its explanation rendered for the page
type snapshotResponse struct {
	*playground.Snapshot
	DescriptionHTML template.HTML `json:"description_html"`
}

func newSnapshotResponse(snap *playground.Snapshot) snapshotResponse {
	return snapshotResponse{Snapshot: snap, DescriptionHTML: renderMarkdown(snap.Description)}
}

func (s *Server) fail(c *gin.Context, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("[Playground] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.AbortWithStatusJSON(status, gin.H{"code": errors.GetCode(err), "error": err.Error()})
}

// handleIndex renders the playground page with the session's current state
func (s *Server) handleIndex(c *gin.Context) {
	ctrl, err := s.controller(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	snap, err := ctrl.Snapshot()
	if err != nil {
		s.fail(c, err)
		return
	}

	data := map[string]interface{}{
		"Snapshot":        snap,
		"DescriptionHTML": renderMarkdown(snap.Description),
		"MaxComplexity":   s.registry.Options().MaxComplexity,
		"Kinds":           []domain.PenaltyKind{domain.KindNone, domain.KindL1, domain.KindL2},
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(c.Writer, "index.html", data); err != nil {
		s.logger.Error("Template error: %v", err)
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": s.registry.Len()})
}

func (s *Server) handleState(c *gin.Context) {
	ctrl, err := s.controller(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	snap, err := ctrl.Snapshot()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newSnapshotResponse(snap))
}

func (s *Server) handleParams(c *gin.Context) {
	var update playground.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		s.fail(c, errors.InvalidInputf("malformed settings: %v", err))
		return
	}

	ctrl, err := s.controller(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	snap, err := ctrl.Apply(update)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newSnapshotResponse(snap))
}

func (s *Server) handleRegenerate(c *gin.Context) {
	ctrl, err := s.controller(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	snap, err := ctrl.Regenerate()
	if err != nil {
		s.fail(c, err)
		return
	}
	s.logger.Debug("[Playground] Regenerated training set, seed=%d", snap.Seed)
	c.JSON(http.StatusOK, newSnapshotResponse(snap))
}

// handleSweep refits the session's data at every complexity
func (s *Server) handleSweep(c *gin.Context) {
	ctrl, err := s.controller(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	settings := ctrl.Settings()
	penalty, err := settings.Penalty()
	if err != nil {
		s.fail(c, err)
		return
	}

	opts := s.registry.Options()
	points, err := fit.Sweep(c.Request.Context(), ctrl.Training(), domain.ModelParameters{
		Penalty:    penalty,
		NoiseLevel: settings.NoiseLevel,
	}, opts.MaxComplexity, opts.CurveSteps)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings, "points": points})
}

// handleExport downloads the session's data as xlsx (default) or csv
func (s *Server) handleExport(c *gin.Context) {
	ctrl, err := s.controller(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	exp, err := ctrl.Export()
	if err != nil {
		s.fail(c, err)
		return
	}

	name := fmt.Sprintf("fitlab_seed%d", exp.Training.Seed)
	switch format := strings.ToLower(c.DefaultQuery("format", "xlsx")); format {
	case "csv":
		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.csv"`, name))
		if err := synth.EncodeCSV(c.Writer, exp.Training); err != nil {
			s.logger.Error("[Export] CSV write failed: %v", err)
		}
	case "xlsx":
		f, err := synth.BuildWorkbook(exp)
		if err != nil {
			s.fail(c, errors.Wrap(err, "failed to build workbook"))
			return
		}
		defer f.Close()
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.xlsx"`, name))
		if err := f.Write(c.Writer); err != nil {
			s.logger.Error("[Export] XLSX write failed: %v", err)
		}
	default:
		s.fail(c, errors.InvalidInputf("unsupported export format %q", format))
	}
}
