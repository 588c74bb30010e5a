package ingestion_engine

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var slidePartPattern = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// slideText renders a .pptx deck as one line per slide, prefixed with the
// slide's 1-based position. Text runs within a slide are joined by spaces.
func slideText(path string) (ExtractedUnit, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return ExtractedUnit{}, fmt.Errorf("open slide deck: %w", err)
	}
	defer zr.Close()

	type slidePart struct {
		num  int
		file *zip.File
	}
	var parts []slidePart
	for _, f := range zr.File {
		m := slidePartPattern.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		num, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		parts = append(parts, slidePart{num: num, file: f})
	}
	sort.Slice(parts, func(i, j int) bool { return parts[i].num < parts[j].num })

	lines := make([]string, 0, len(parts))
	for i, p := range parts {
		runs, err := slideRuns(p.file)
		if err != nil {
			return ExtractedUnit{}, fmt.Errorf("read slide %d: %w", p.num, err)
		}
		lines = append(lines, fmt.Sprintf("Slide %d: %s", i+1, strings.Join(runs, " ")))
	}

	return ExtractedUnit{Kind: UnitSlideText, Text: strings.Join(lines, "\n")}, nil
}

// slideRuns pulls the character data of every <a:t> element in one slide part.
func slideRuns(f *zip.File) ([]string, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	dec := xml.NewDecoder(rc)
	var runs []string
	var inRun bool
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inRun = true
			}
		case xml.EndElement:
			if t.Name.Local == "t" {
				inRun = false
			}
		case xml.CharData:
			if inRun {
				runs = append(runs, string(t))
			}
		}
	}
	return runs, nil
}
