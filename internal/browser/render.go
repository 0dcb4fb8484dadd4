package browser

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"
)

// Screenshot renders the page as a PNG. The picture is synthetic: a header
// band tinted per URL over a white canvas, sized to the viewport.
func (p *Page) Screenshot(fullPage bool) ([]byte, error) {
	p.mu.Lock()
	url, vp := p.url, p.viewport
	p.mu.Unlock()

	height := vp.Height
	if fullPage {
		height *= 2
	}

	img := image.NewRGBA(image.Rect(0, 0, vp.Width, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	band := image.Rect(0, 0, vp.Width, min(height, 96))
	draw.Draw(img, band, &image.Uniform{C: tint(url)}, image.Point{}, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode screenshot: %w", err)
	}
	return buf.Bytes(), nil
}

// PDF renders the page title and text as a single-page PDF document.
func (p *Page) PDF(landscape bool) ([]byte, error) {
	p.mu.Lock()
	title := p.title
	text := normalizeSpace(p.doc.Find("body").Text())
	p.mu.Unlock()

	width, height := 612, 792
	if landscape {
		width, height = height, width
	}

	var content bytes.Buffer
	fmt.Fprintf(&content, "BT /F1 18 Tf 72 %d Td (%s) Tj ET\n", height-72, pdfEscape(title))
	fmt.Fprintf(&content, "BT /F1 10 Tf 72 %d Td (%s) Tj ET\n", height-100, pdfEscape(truncate(text, 90)))

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %d %d] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>", width, height),
		fmt.Sprintf("<< /Length %d >>\nstream\n%sendstream", content.Len(), content.String()),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = out.Len()
		fmt.Fprintf(&out, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := out.Len()
	fmt.Fprintf(&out, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&out, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&out, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return out.Bytes(), nil
}

func tint(url string) color.RGBA {
	h := fnv.New32a()
	h.Write([]byte(url))
	sum := h.Sum32()
	return color.RGBA{R: uint8(sum), G: uint8(sum >> 8), B: uint8(sum >> 16), A: 0xff}
}

func pdfEscape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, "(", `\(`, ")", `\)`)
	return r.Replace(s)
}

func truncate(s string, n int) string {
	if n <= 0 || len([]rune(s)) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
