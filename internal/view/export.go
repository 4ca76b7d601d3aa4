package view

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
	"github.com/ppanel/ppadmin/internal/config"
	"github.com/ppanel/ppadmin/internal/export"
	"github.com/ppanel/ppadmin/internal/grid"
	"github.com/ppanel/ppadmin/internal/ui"
)

const (
	exportDialogID = "export"
	exportWidth    = 70
	exportHeight   = 11
)

// ExportRequest says where and how a grid snapshot is exported.
type ExportRequest struct {
	Resource string
	Format   export.Format
	Dir      string
	S3       *export.S3Config
}

// ExportResult lists where an export landed.
type ExportResult struct {
	Path string
	URL  string
}

// String returns a one line summary.
func (r ExportResult) String() string {
	ss := make([]string, 0, 2)
	if r.Path != "" {
		ss = append(ss, r.Path)
	}
	if r.URL != "" {
		ss = append(ss, r.URL)
	}
	return strings.Join(ss, " and ")
}

// Export writes a grid snapshot to disk and optionally uploads it.
func Export(ctx context.Context, req ExportRequest, v grid.View, at time.Time) (ExportResult, error) {
	var res ExportResult
	t := export.FromView(v)
	if req.Dir != "" {
		path, err := export.SaveFile(req.Dir, req.Resource, t, req.Format, at)
		if err != nil {
			return res, err
		}
		res.Path = path
	}
	if req.S3 != nil {
		u, err := export.NewUploader(ctx, *req.S3)
		if err != nil {
			return res, err
		}
		url, err := u.Upload(ctx, req.Resource, t, req.Format, at)
		if err != nil {
			return res, err
		}
		res.URL = url
	}
	if res.Path == "" && res.URL == "" {
		return res, fmt.Errorf("no export destination")
	}

	return res, nil
}

// exportDefaults seeds the export form from the configuration.
func (a *App) exportDefaults(resource string) (ExportRequest, bool) {
	req := ExportRequest{
		Resource: resource,
		Format:   export.FormatCSV,
		Dir:      config.AppExportsDir,
	}
	p := a.ppadmin()
	if p == nil {
		return req, false
	}
	if f, err := export.ParseFormat(p.Export.Format); err == nil {
		req.Format = f
	}
	if p.Export.Dir != "" {
		req.Dir = p.Export.Dir
	}
	if !p.Gates().S3Export {
		return req, false
	}
	req.S3 = &export.S3Config{
		Bucket: p.Export.Bucket,
		Region: p.Export.Region,
		Prefix: p.Export.Prefix,
	}

	return req, true
}

func (a *App) showExport(resource string, v grid.View, done func()) {
	req, s3 := a.exportDefaults(resource)
	upload := s3

	ff := make([]string, 0, len(export.Formats))
	for _, f := range export.Formats {
		ff = append(ff, string(f))
	}
	form := tview.NewForm()
	form.SetBorder(true)
	form.SetTitle(fmt.Sprintf(" Export %s ", tview.Escape(v.Title)))
	form.SetBorderColor(tcell.ColorDarkCyan)
	form.SetFieldBackgroundColor(tcell.ColorDarkSlateGray)
	form.SetButtonBackgroundColor(tcell.ColorDarkCyan)
	form.AddDropDown("Format", ff, max(slices.Index(export.Formats, req.Format), 0), func(_ string, i int) {
		if i >= 0 && i < len(export.Formats) {
			req.Format = export.Formats[i]
		}
	})
	form.AddInputField("Directory", req.Dir, 48, nil, func(s string) {
		req.Dir = strings.TrimSpace(s)
	})
	if s3 {
		form.AddCheckbox("Upload to S3", upload, func(b bool) { upload = b })
	}

	dismiss := func() {
		a.Content.DismissModal(exportDialogID)
		if done != nil {
			done()
		}
	}
	form.AddButton("Export", func() {
		dismiss()
		r := req
		if !upload {
			r.S3 = nil
		}
		go a.runExport(r, v)
	})
	form.AddButton("Cancel", dismiss)
	form.SetCancelFunc(dismiss)

	h := exportHeight
	if s3 {
		h += 2
	}
	a.Content.ShowModal(exportDialogID, form, exportWidth, h)
	a.SetFocus(form)
}

func (a *App) runExport(req ExportRequest, v grid.View) {
	ctx, cancel := context.WithTimeout(a.ctx, a.apiTimeout())
	defer cancel()

	res, err := Export(ctx, req, v, time.Now())
	if err != nil {
		a.log.Error("export failed", "resource", req.Resource, "err", err)
		a.QueueUpdateDraw(func() {
			m := ui.ShowError(a.Content, "Export failed: "+err.Error(), func() {
				if top := a.Content.Top(); top != nil {
					a.SetFocus(top)
				}
			})
			a.SetFocus(m)
		})
		return
	}
	a.log.Info("exported", "resource", req.Resource, "rows", len(v.Rows), "to", res.String())
	a.flash.Infof("Exported %d rows to %s", len(v.Rows), res.String())
}
