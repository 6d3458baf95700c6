package catalog

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var offsetRe = regexp.MustCompile(`[?&]n=(\d+)`)

// ParsePage extracts stations and pagination links from a results page.
// Stations without any stream are skipped.
func ParsePage(r io.Reader) (Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Page{}, fmt.Errorf("parse directory page: %w", err)
	}

	var page Page
	doc.Find("div.stnblock").Each(func(_ int, block *goquery.Selection) {
		st := Station{
			Name:        textOr(block.Find("h3.stn"), UnknownStation),
			Location:    textOr(block.Find(".loc"), UnknownLocation),
			Genre:       textOr(block.Find(".sty"), UnknownGenre),
			Description: textOr(block.Find(".desc"), ""),
		}
		block.Find(".sqdiv .sq").Each(func(_ int, sq *goquery.Selection) {
			u, ok := sq.Attr("title")
			u = strings.TrimSpace(u)
			if !ok || u == "" {
				return
			}
			st.Streams = append(st.Streams, Stream{
				URL:     u,
				Codec:   textOr(sq.Find(".cn"), Unknown),
				Bitrate: textOr(sq.Find(".br"), ""),
			})
		})
		if len(st.Streams) > 0 {
			page.Stations = append(page.Stations, st)
		}
	})

	doc.Find("footer#footer a.btn.arrbtn").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		m := offsetRe.FindStringSubmatch(href)
		if m == nil {
			return
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return
		}
		switch text := a.Text(); {
		case strings.Contains(text, "←"):
			page.PrevOffset = &n
		case strings.Contains(text, "→"):
			page.NextOffset = &n
		}
	})

	return page, nil
}

// textOr returns the trimmed text of the first match, or def.
func textOr(sel *goquery.Selection, def string) string {
	if sel.Length() == 0 {
		return def
	}
	text := strings.Join(strings.Fields(sel.First().Text()), " ")
	if text == "" {
		return def
	}
	return text
}
