package parser

import (
	"archive/zip"
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/ukaji3/slidechart-go/pkg/slidechart/models"
)

// ChartTypeMap maps OOXML chart group tags to the series variant they draw.
// Groups not listed here (scatter, radar, stock...) are ignored.
var ChartTypeMap = map[string]models.Variant{
	"barChart":      models.VariantBar,
	"bar3DChart":    models.VariantBar,
	"lineChart":     models.VariantLine,
	"line3DChart":   models.VariantLine,
	"areaChart":     models.VariantArea,
	"area3DChart":   models.VariantArea,
	"pieChart":      models.VariantPie,
	"pie3DChart":    models.VariantPie,
	"doughnutChart": models.VariantPie,
	"ofPieChart":    models.VariantPie,
}

// chartInfo holds chart metadata from drawing.xml.
type chartInfo struct {
	chartPath string
	pos       chartPosition
}

// chartPosition holds position info from drawing.xml.
type chartPosition struct {
	rID    string
	name   string
	anchor models.Anchor
}

// dataSource is a cat, val or tx element: its formula and cached points.
type dataSource struct {
	ref    string
	values []string
}

type seriesPart struct {
	name        dataSource
	cat         dataSource
	val         dataSource
	color       string
	pointColors map[int]string
}

type chartGroup struct {
	tag     string
	variant models.Variant
	series  []seriesPart
}

type chartPart struct {
	title  string
	groups []chartGroup
}

// ExtractCharts reads every supported chart of an xlsx file, keyed by sheet
// name. Charts keep their drawing order. Values missing from the chart's
// caches are read through resolver, which may be nil.
func ExtractCharts(xlsxPath string, resolver RangeResolver) (map[string][]models.ChartSource, error) {
	r, err := zip.OpenReader(xlsxPath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	sheetChartMap := getSheetChartMap(&r.Reader)

	result := make(map[string][]models.ChartSource)
	for sheetName, chartInfos := range sheetChartMap {
		var charts []models.ChartSource
		for _, ci := range chartInfos {
			chartXML, err := readZipFile(&r.Reader, ci.chartPath)
			if err != nil || chartXML == nil {
				continue
			}
			part := parseChartXML(chartXML)
			source, ok := part.source(resolver)
			if !ok {
				continue
			}
			source.Sheet = sheetName
			source.Name = ci.pos.name
			source.Anchor = ci.pos.anchor
			charts = append(charts, source)
		}
		if len(charts) > 0 {
			result[sheetName] = charts
		}
	}

	return result, nil
}

// getSheetChartMap returns a mapping of sheet names to their chart info.
func getSheetChartMap(r *zip.Reader) map[string][]chartInfo {
	result := make(map[string][]chartInfo)

	workbookXML, err := readZipFile(r, "xl/workbook.xml")
	if err != nil || workbookXML == nil {
		return result
	}

	sheetsInfo, _ := parseWorkbookSheets(workbookXML)
	if len(sheetsInfo) == 0 {
		return result
	}

	wbRelsXML, err := readZipFile(r, "xl/_rels/workbook.xml.rels")
	if err != nil || wbRelsXML == nil {
		return result
	}

	sheetFiles := parseWorkbookRels(wbRelsXML, sheetsInfo)

	for sheetName, sheetPath := range sheetFiles {
		sheetRelsXML, err := readZipFile(r, relsPathFor(sheetPath))
		if err != nil || sheetRelsXML == nil {
			continue
		}

		drawingPath := findDrawingRelationship(sheetRelsXML)
		if drawingPath == "" {
			continue
		}

		drawingFullPath := resolveRelativePath(drawingPath, "xl/worksheets")
		chartInfos := getChartInfosFromDrawing(r, drawingFullPath)
		if len(chartInfos) > 0 {
			result[sheetName] = chartInfos
		}
	}

	return result
}

// getChartInfosFromDrawing lists the charts of a drawing part in document order.
func getChartInfosFromDrawing(r *zip.Reader, drawingPath string) []chartInfo {
	var result []chartInfo

	drawingXML, err := readZipFile(r, drawingPath)
	if err != nil || drawingXML == nil {
		return result
	}

	positions := parseDrawingForCharts(drawingXML)
	if len(positions) == 0 {
		return result
	}

	relsXML, err := readZipFile(r, relsPathFor(drawingPath))
	if err != nil || relsXML == nil {
		return result
	}

	chartPaths := parseDrawingRels(relsXML)
	for _, pos := range positions {
		if chartPath, ok := chartPaths[pos.rID]; ok {
			result = append(result, chartInfo{
				chartPath: resolveRelativePath(chartPath, "xl/drawings"),
				pos:       pos,
			})
		}
	}

	return result
}

// parseDrawingForCharts finds chart graphic frames in drawing XML.
func parseDrawingForCharts(data []byte) []chartPosition {
	var result []chartPosition
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		if se, ok := token.(xml.StartElement); ok {
			switch se.Name.Local {
			case "twoCellAnchor", "oneCellAnchor", "absoluteAnchor":
				if pos := parseAnchor(decoder); pos.rID != "" {
					result = append(result, pos)
				}
			}
		}
	}

	return result
}

// parseAnchor parses a drawing anchor looking for a graphicFrame with a chart.
// Cell markers give the position when the frame transform is empty, as it is
// in files written by excelize.
func parseAnchor(decoder *xml.Decoder) chartPosition {
	var pos chartPosition
	var from, to cellMarker
	var hasFrom, hasTo bool
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "graphicFrame":
				pos = parseGraphicFrame(decoder)
				depth--
			case "from":
				from, hasFrom = parseMarker(decoder), true
				depth--
			case "to":
				to, hasTo = parseMarker(decoder), true
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	if pos.anchor == (models.Anchor{}) && hasFrom {
		pos.anchor.L, pos.anchor.T = from.pixels()
		if hasTo {
			r, b := to.pixels()
			pos.anchor.W, pos.anchor.H = r-pos.anchor.L, b-pos.anchor.T
		}
	}
	return pos
}

func parseMarker(decoder *xml.Decoder) cellMarker {
	var m cellMarker
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			txt, err := readElementText(decoder)
			depth--
			if err != nil {
				continue
			}
			txt = strings.TrimSpace(txt)
			switch t.Name.Local {
			case "col":
				m.col, _ = strconv.Atoi(txt)
			case "row":
				m.row, _ = strconv.Atoi(txt)
			case "colOff":
				m.colOff, _ = strconv.ParseInt(txt, 10, 64)
			case "rowOff":
				m.rowOff, _ = strconv.ParseInt(txt, 10, 64)
			}
		case xml.EndElement:
			depth--
		}
	}

	return m
}

// parseGraphicFrame parses graphicFrame content.
func parseGraphicFrame(decoder *xml.Decoder) chartPosition {
	var pos chartPosition
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "cNvPr":
				pos.name = attr(t, "name")
			case "xfrm":
				l, tp, w, h := parseXfrm(decoder)
				pos.anchor = models.Anchor{L: l, T: tp, W: w, H: h}
				depth--
			case "chart":
				pos.rID = attr(t, "id")
			}
		case xml.EndElement:
			depth--
		}
	}

	return pos
}

// parseDrawingRels maps relationship ids to chart part targets.
func parseDrawingRels(data []byte) map[string]string {
	result := make(map[string]string)
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "Relationship" {
			if strings.Contains(strings.ToLower(attr(se, "Type")), "chart") {
				result[attr(se, "Id")] = attr(se, "Target")
			}
		}
	}

	return result
}

// parseChartXML parses a chart part.
func parseChartXML(data []byte) chartPart {
	var part chartPart
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "chart" {
			part = parseChartElement(decoder)
		}
	}

	return part
}

// parseChartElement parses c:chart element.
func parseChartElement(decoder *xml.Decoder) chartPart {
	var part chartPart
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "title":
				part.title = parseChartTitle(decoder)
				depth--
			case "plotArea":
				part.groups = parsePlotArea(decoder)
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	return part
}

// parseChartTitle concatenates the text runs of a title element.
func parseChartTitle(decoder *xml.Decoder) string {
	var title strings.Builder
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local == "t" || t.Name.Local == "v" {
				if txt, err := readElementText(decoder); err == nil {
					title.WriteString(txt)
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	return strings.TrimSpace(title.String())
}

// parsePlotArea collects the supported chart groups in document order.
func parsePlotArea(decoder *xml.Decoder) []chartGroup {
	var groups []chartGroup
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if variant, ok := ChartTypeMap[t.Name.Local]; ok {
				groups = append(groups, chartGroup{
					tag:     t.Name.Local,
					variant: variant,
					series:  parseChartSeries(decoder),
				})
				depth--
			} else if strings.HasSuffix(t.Name.Local, "Ax") || t.Name.Local == "spPr" {
				skipElement(decoder)
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	return groups
}

// parseChartSeries parses series elements within a chart group.
func parseChartSeries(decoder *xml.Decoder) []seriesPart {
	var series []seriesPart
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local == "ser" {
				series = append(series, parseSingleSeries(decoder))
			} else {
				skipElement(decoder)
			}
			depth--
		case xml.EndElement:
			depth--
		}
	}

	return series
}

// parseSingleSeries parses a single series element.
func parseSingleSeries(decoder *xml.Decoder) seriesPart {
	var s seriesPart
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "tx":
				s.name = parseDataSource(decoder)
			case "cat":
				s.cat = parseDataSource(decoder)
			case "val":
				s.val = parseDataSource(decoder)
			case "spPr":
				s.color = parseShapeColor(decoder)
			case "dPt":
				idx, color := parseDataPoint(decoder)
				if idx >= 0 && color != "" {
					if s.pointColors == nil {
						s.pointColors = make(map[int]string)
					}
					s.pointColors[idx] = color
				}
			default:
				// marker, dLbls and trendlines carry their own spPr.
				skipElement(decoder)
			}
			depth--
		case xml.EndElement:
			depth--
		}
	}

	return s
}

// parseDataSource reads the formula and cached points of a tx, cat or val
// element. A literal <c:v> directly under tx becomes the only value.
func parseDataSource(decoder *xml.Decoder) dataSource {
	var ds dataSource
	var literal string
	points := make(map[int]string)
	maxIdx := -1
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "f":
				if txt, err := readElementText(decoder); err == nil {
					ds.ref = strings.TrimSpace(txt)
				}
				depth--
			case "pt":
				idx := attrInt(t, "idx")
				v := parsePointValue(decoder)
				if idx >= 0 {
					points[idx] = v
					if idx > maxIdx {
						maxIdx = idx
					}
				}
				depth--
			case "v":
				if txt, err := readElementText(decoder); err == nil {
					literal = txt
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	if maxIdx >= 0 {
		ds.values = make([]string, maxIdx+1)
		for idx, v := range points {
			ds.values[idx] = v
		}
	} else if literal != "" {
		ds.values = []string{literal}
	}
	return ds
}

// parsePointValue returns the <c:v> text of a <c:pt> element.
func parsePointValue(decoder *xml.Decoder) string {
	var value string
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local == "v" {
				if txt, err := readElementText(decoder); err == nil {
					value = txt
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	return value
}

// parseShapeColor returns the first srgbClr value of an spPr element. Fill
// and outline colors are both accepted so that line series resolve too.
func parseShapeColor(decoder *xml.Decoder) string {
	var color string
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local == "srgbClr" && color == "" {
				color = attr(t, "val")
			}
		case xml.EndElement:
			depth--
		}
	}

	return color
}

// parseDataPoint reads the index and fill color of a dPt element.
func parseDataPoint(decoder *xml.Decoder) (idx int, color string) {
	idx = -1
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "idx":
				idx = attrInt(t, "val")
			case "spPr":
				color = parseShapeColor(decoder)
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	return
}

// source converts a parsed chart part to loosely typed chart data. It
// reports false when the part has no supported chart group.
func (c chartPart) source(resolver RangeResolver) (models.ChartSource, bool) {
	if len(c.groups) == 0 {
		return models.ChartSource{}, false
	}

	var src models.ChartSource
	variants := make(map[models.Variant]bool)
	for _, g := range c.groups {
		src.Kinds = append(src.Kinds, g.tag)
		variants[g.variant] = true
	}

	chartType := chartTypeFor(c.groups[0].variant)
	if variants[models.VariantBar] && variants[models.VariantLine] {
		chartType = models.TypeColumnLine
	}

	data := models.PartialChart{Type: string(chartType)}
	if c.title != "" {
		data.Title = c.title
	}

	var categories []string
	var categoryRef string
	for _, g := range c.groups {
		for _, s := range g.series {
			if len(categories) == 0 {
				categories = s.cat.resolve(resolver)
				categoryRef = s.cat.ref
			}
		}
	}
	for _, label := range categories {
		data.Labels = append(data.Labels, label)
	}

	for _, g := range c.groups {
		for _, s := range g.series {
			ps := models.PartialSeries{Variant: string(g.variant)}
			if names := s.name.resolve(resolver); len(names) > 0 {
				ps.Label = names[0]
			}
			if s.color != "" {
				ps.Color = "#" + s.color
			}
			for _, v := range s.val.resolve(resolver) {
				ps.Data = append(ps.Data, parseValue(strings.TrimSpace(v)))
			}
			if g.variant == models.VariantPie {
				ps.SegmentColors = segmentColors(s.pointColors, categoryRef, len(categories), resolver)
			}
			data.Datasets = append(data.Datasets, ps)
		}
	}

	src.Data = data
	return src, true
}

// resolve returns the cached values, falling back to the resolver.
func (d dataSource) resolve(resolver RangeResolver) []string {
	if len(d.values) > 0 || d.ref == "" || resolver == nil {
		return d.values
	}
	values, err := resolver.ResolveValues(d.ref)
	if err != nil {
		return nil
	}
	return values
}

// segmentColors merges explicit data point colors with the fills of the
// category cells. Explicit data point colors win.
func segmentColors(points map[int]string, categoryRef string, n int, resolver RangeResolver) []any {
	colors := make([]any, n)
	found := false
	if categoryRef != "" && resolver != nil {
		if fills, err := resolver.ResolveFills(categoryRef); err == nil {
			for i := 0; i < n && i < len(fills); i++ {
				if fills[i] != "" {
					colors[i] = "#" + fills[i]
					found = true
				}
			}
		}
	}
	for i, c := range points {
		if i < n {
			colors[i] = "#" + c
			found = true
		}
	}
	if !found {
		return nil
	}
	return colors
}

func chartTypeFor(v models.Variant) models.ChartType {
	switch v {
	case models.VariantLine:
		return models.TypeLine
	case models.VariantArea:
		return models.TypeArea
	case models.VariantPie:
		return models.TypePie
	default:
		return models.TypeBar
	}
}
