package parser

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"strconv"
	"strings"
)

// readZipFile returns the content of a package part, or nil when absent.
func readZipFile(r *zip.Reader, name string) ([]byte, error) {
	for _, f := range r.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, nil
}

// readElementText consumes the current element and returns its character data.
func readElementText(decoder *xml.Decoder) (string, error) {
	var text strings.Builder
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return text.String(), err
		}
		switch t := token.(type) {
		case xml.CharData:
			text.Write(t)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return text.String(), nil
}

// skipElement consumes the current element without inspecting it.
func skipElement(decoder *xml.Decoder) {
	_ = decoder.Skip()
}

// attr returns the value of the attribute with the given local name.
func attr(se xml.StartElement, local string) string {
	for _, a := range se.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// attrInt returns the integer attribute with the given local name, or -1.
func attrInt(se xml.StartElement, local string) int {
	v, err := strconv.Atoi(attr(se, local))
	if err != nil {
		return -1
	}
	return v
}

func resolveRelativePath(target, baseDir string) string {
	if strings.HasPrefix(target, "../") {
		clean := target
		for strings.HasPrefix(clean, "../") {
			clean = strings.TrimPrefix(clean, "../")
		}
		return "xl/" + clean
	}
	if strings.HasPrefix(target, "/") {
		// Absolute part names are rooted at the package, not baseDir.
		return strings.TrimPrefix(target, "/")
	}
	return baseDir + "/" + target
}

// parseWorkbookSheets maps relationship ids to sheet names, preserving the
// workbook's sheet order in the returned slice.
func parseWorkbookSheets(data []byte) (map[string]string, []string) {
	result := make(map[string]string)
	var order []string
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "sheet" {
			name, rID := attr(se, "name"), attr(se, "id")
			if name != "" && rID != "" {
				result[rID] = name
				order = append(order, name)
			}
		}
	}

	return result, order
}

func parseWorkbookRels(data []byte, sheetsInfo map[string]string) map[string]string {
	result := make(map[string]string) // sheet name -> part path
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "Relationship" {
			rID, target := attr(se, "Id"), attr(se, "Target")
			if sheetName, ok := sheetsInfo[rID]; ok && strings.Contains(strings.ToLower(target), "worksheet") {
				result[sheetName] = resolveRelativePath(target, "xl")
			}
		}
	}

	return result
}

func findDrawingRelationship(data []byte) string {
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "Relationship" {
			if strings.Contains(strings.ToLower(attr(se, "Type")), "drawing") {
				return attr(se, "Target")
			}
		}
	}

	return ""
}

// relsPathFor returns the relationships part that belongs to partPath,
// e.g. xl/drawings/drawing1.xml -> xl/drawings/_rels/drawing1.xml.rels.
func relsPathFor(partPath string) string {
	dir, file := "", partPath
	if idx := strings.LastIndex(partPath, "/"); idx >= 0 {
		dir, file = partPath[:idx+1], partPath[idx+1:]
	}
	return dir + "_rels/" + file + ".rels"
}

// parseXfrm reads the offset and extent of a transform element in pixels.
func parseXfrm(decoder *xml.Decoder) (left, top, width, height int) {
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
			case "off":
				if x, err := strconv.ParseInt(attr(t, "x"), 10, 64); err == nil {
					left = EMUToPixels(x)
				}
				if y, err := strconv.ParseInt(attr(t, "y"), 10, 64); err == nil {
					top = EMUToPixels(y)
				}
			case "ext":
				if cx, err := strconv.ParseInt(attr(t, "cx"), 10, 64); err == nil {
					width = EMUToPixels(cx)
				}
				if cy, err := strconv.ParseInt(attr(t, "cy"), 10, 64); err == nil {
					height = EMUToPixels(cy)
				}
			}
		case xml.EndElement:
			depth--
		}
	}

	return
}
