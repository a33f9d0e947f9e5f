package pptx

import (
	"encoding/xml"
	"fmt"
	"math"
	"strings"
)

// shape renders itself into a slide's shape tree. relID is the relationship
// id assigned to the shape's media, if it has any.
type shape interface {
	writeXML(b *strings.Builder, id int, relID, lang string)
}

type rectShape struct {
	frame     Rect
	fill      Fill
	geom      string
	adjust    float64
	hasAdjust bool
}

func (r *rectShape) writeXML(b *strings.Builder, id int, _, _ string) {
	fmt.Fprintf(b, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="Shape %d"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr><p:spPr>`, id, id-1)
	writeXfrm(b, r.frame)
	fmt.Fprintf(b, `<a:prstGeom prst="%s"><a:avLst>`, r.geom)
	if r.hasAdjust {
		fmt.Fprintf(b, `<a:gd name="adj" fmla="val %d"/>`, int(math.Round(r.adjust*100000)))
	}
	b.WriteString(`</a:avLst></a:prstGeom>`)
	writeFill(b, r.fill)
	b.WriteString(`<a:ln><a:noFill/></a:ln></p:spPr></p:sp>`)
}

type textShape struct {
	frame      Rect
	paragraphs []Paragraph
}

func (t *textShape) writeXML(b *strings.Builder, id int, _, lang string) {
	fmt.Fprintf(b, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="TextBox %d"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr><p:spPr>`, id, id-1)
	writeXfrm(b, t.frame)
	b.WriteString(`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom><a:noFill/></p:spPr>`)
	b.WriteString(`<p:txBody><a:bodyPr wrap="square" rtlCol="0"><a:noAutofit/></a:bodyPr><a:lstStyle/>`)
	for _, p := range t.paragraphs {
		writeParagraph(b, p, lang)
	}
	b.WriteString(`</p:txBody></p:sp>`)
}

type pictureShape struct {
	frame Rect
	data  []byte
	ext   string
}

func (p *pictureShape) writeXML(b *strings.Builder, id int, relID, _ string) {
	fmt.Fprintf(b, `<p:pic><p:nvPicPr><p:cNvPr id="%d" name="Picture %d"/><p:cNvPicPr><a:picLocks noChangeAspect="1"/></p:cNvPicPr><p:nvPr/></p:nvPicPr>`, id, id-1)
	fmt.Fprintf(b, `<p:blipFill><a:blip r:embed="%s"/><a:stretch><a:fillRect/></a:stretch></p:blipFill><p:spPr>`, relID)
	writeXfrm(b, p.frame)
	b.WriteString(`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr></p:pic>`)
}

func writeXfrm(b *strings.Builder, r Rect) {
	fmt.Fprintf(b, `<a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`, r.X, r.Y, max(r.W, 0), max(r.H, 0))
}

func writeFill(b *strings.Builder, f Fill) {
	switch {
	case f.Color == "":
		b.WriteString(`<a:noFill/>`)
	case f.GradientTo != "":
		b.WriteString(`<a:gradFill rotWithShape="1"><a:gsLst><a:gs pos="0">`)
		writeColor(b, f.Color, f.Transparency)
		b.WriteString(`</a:gs><a:gs pos="100000">`)
		writeColor(b, f.GradientTo, f.Transparency)
		fmt.Fprintf(b, `</a:gs></a:gsLst><a:lin ang="%d" scaled="0"/></a:gradFill>`, angle(f.GradientAngle))
	default:
		b.WriteString(`<a:solidFill>`)
		writeColor(b, f.Color, f.Transparency)
		b.WriteString(`</a:solidFill>`)
	}
}

func writeColor(b *strings.Builder, c Color, transparency float64) {
	if transparency <= 0 {
		fmt.Fprintf(b, `<a:srgbClr val="%s"/>`, normalizeColor(c))
		return
	}
	alpha := int(math.Round((1 - math.Min(transparency, 1)) * 100000))
	fmt.Fprintf(b, `<a:srgbClr val="%s"><a:alpha val="%d"/></a:srgbClr>`, normalizeColor(c), alpha)
}

// angle converts degrees to the 60000ths of a degree OOXML uses.
func angle(deg float64) int {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return int(math.Round(deg * 60000))
}

func normalizeColor(c Color) string {
	s := strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(string(c)), "#"))
	if len(s) != 6 {
		return "000000"
	}
	for _, r := range s {
		if !strings.ContainsRune("0123456789ABCDEF", r) {
			return "000000"
		}
	}
	return s
}

func writeParagraph(b *strings.Builder, p Paragraph, lang string) {
	b.WriteString(`<a:p>`)
	var ppr strings.Builder
	if p.LineSpacing > 0 {
		fmt.Fprintf(&ppr, `<a:lnSpc><a:spcPct val="%d"/></a:lnSpc>`, int(math.Round(p.LineSpacing*100000)))
	}
	if p.SpaceAfter > 0 {
		fmt.Fprintf(&ppr, `<a:spcAft><a:spcPts val="%d"/></a:spcAft>`, int(math.Round(p.SpaceAfter*100)))
	}
	switch {
	case p.Align != "" && ppr.Len() > 0:
		fmt.Fprintf(b, `<a:pPr algn="%s">%s</a:pPr>`, p.Align, ppr.String())
	case p.Align != "":
		fmt.Fprintf(b, `<a:pPr algn="%s"/>`, p.Align)
	case ppr.Len() > 0:
		fmt.Fprintf(b, `<a:pPr>%s</a:pPr>`, ppr.String())
	}
	fmt.Fprintf(b, `<a:r><a:rPr lang="%s"`, lang)
	if p.Size > 0 {
		fmt.Fprintf(b, ` sz="%d"`, int(math.Round(p.Size*100)))
	}
	if p.Bold {
		b.WriteString(` b="1"`)
	}
	b.WriteString(` dirty="0">`)
	if p.Color != "" {
		b.WriteString(`<a:solidFill>`)
		writeColor(b, p.Color, 0)
		b.WriteString(`</a:solidFill>`)
	}
	if p.Font != "" {
		fmt.Fprintf(b, `<a:latin typeface="%s"/>`, escapeText(p.Font))
	}
	fmt.Fprintf(b, `</a:rPr><a:t>%s</a:t></a:r></a:p>`, escapeText(p.Text))
}

func escapeText(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
