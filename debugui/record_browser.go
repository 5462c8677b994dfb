package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/arscene/scene"
)

// RecordBrowser lists targets and projectiles and selects on click.
type RecordBrowser struct {
	selection *scene.Selection

	filterText    string
	sortColumn    int
	sortAscending bool
	perPage       int
	page          int
}

func NewRecordBrowser(selection *scene.Selection, perPage int) *RecordBrowser {
	return &RecordBrowser{
		selection:     selection,
		sortAscending: true,
		perPage:       perPage,
	}
}

func (rb *RecordBrowser) Render(frame *scene.UpdateFrame) {
	if !imgui.BeginV("Records", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.InputTextWithHint("##search", "Search...", &rb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		rb.filterText = ""
	}

	rows := CollectRows(frame.Registry)
	SortRows(rows, rb.sortColumn, rb.sortAscending)
	rows = FilterRows(rows, rb.filterText)

	pages := max(1, (len(rows)+rb.perPage-1)/rb.perPage)
	rb.page = min(rb.page, pages-1)
	start := rb.page * rb.perPage
	end := min(start+rb.perPage, len(rows))

	selected := rb.selection.ID()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("RecordTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Record")
		imgui.TableSetupColumn("Class")
		imgui.TableSetupColumn("Speed")
		imgui.TableSetupColumn("TTL")
		imgui.TableSetupColumn("")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			rb.sortColumn = int(spec.ColumnIndex())
			rb.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortSpecs.SetSpecsDirty(false)
		}

		for _, row := range rows[start:end] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			label := fmt.Sprintf("#%d (h%d)", row.ID.Serial(), row.Handle)
			if imgui.SelectableBoolV(label, row.ID == selected, imgui.SelectableFlagsNone, imgui.NewVec2(0, 0)) {
				rb.selection.Set(row.ID)
			}

			imgui.TableNextColumn()
			imgui.Text(row.Class.String())

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.3f", row.Speed))

			imgui.TableNextColumn()
			imgui.Text(FormatTTL(row.TTL))

			imgui.TableNextColumn()
			if imgui.Button(fmt.Sprintf("Flag##%d", row.ID)) {
				frame.Registry.Flag(row.ID)
			}
		}

		imgui.EndTable()
	}

	if pages > 1 {
		imgui.Text(fmt.Sprintf("Page %d / %d (%d records)", rb.page+1, pages, len(rows)))
		imgui.SameLine()
		if imgui.Button("Prev") && rb.page > 0 {
			rb.page--
		}
		imgui.SameLine()
		if imgui.Button("Next") && rb.page < pages-1 {
			rb.page++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d records", len(rows)))
	}

	imgui.End()
}
