package pptx

import (
	"archive/zip"
	"fmt"
	"io"
	"slices"
)

type part struct {
	name string
	data []byte
}

// Write serializes the presentation as a zip package.
func (p *Presentation) Write(w io.Writer) error {
	parts := p.parts()
	zw := zip.NewWriter(w)
	for _, pt := range parts {
		header := &zip.FileHeader{Name: pt.name, Method: zip.Deflate}
		if !p.Created.IsZero() {
			header.Modified = p.Created
		}
		fw, err := zw.CreateHeader(header)
		if err != nil {
			return fmt.Errorf("create %s: %w", pt.name, err)
		}
		if _, err := fw.Write(pt.data); err != nil {
			return fmt.Errorf("write %s: %w", pt.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finish package: %w", err)
	}
	return nil
}

func (p *Presentation) parts() []part {
	var (
		out        []part
		overrides  []override
		extensions []string
		slideRels  []string
		mediaCount int
	)
	add := func(name string, data string) {
		out = append(out, part{name: name, data: []byte(data)})
	}

	presRels := []relationship{
		{id: "rId1", kind: relSlideMaster, target: "slideMasters/slideMaster1.xml"},
		{id: "rId2", kind: relNotesMaster, target: "notesMasters/notesMaster1.xml"},
		{id: "rId3", kind: relTheme, target: "theme/theme1.xml"},
		{id: "rId4", kind: relPresProps, target: "presProps.xml"},
	}

	notesCount := 0
	for i, s := range p.slides {
		n := i + 1
		rid := fmt.Sprintf("rId%d", len(presRels)+1)
		presRels = append(presRels, relationship{id: rid, kind: relSlide, target: fmt.Sprintf("slides/slide%d.xml", n)})
		slideRels = append(slideRels, rid)

		rels := []relationship{{id: "rId1", kind: relSlideLayout, target: "../slideLayouts/slideLayout1.xml"}}
		mediaRels := make(map[int]string)
		for idx, sh := range s.shapes {
			pic, ok := sh.(*pictureShape)
			if !ok {
				continue
			}
			mediaCount++
			name := fmt.Sprintf("image%d.%s", mediaCount, pic.ext)
			relID := fmt.Sprintf("rId%d", len(rels)+1)
			rels = append(rels, relationship{id: relID, kind: relImage, target: "../media/" + name})
			mediaRels[idx] = relID
			out = append(out, part{name: "ppt/media/" + name, data: pic.data})
			if !slices.Contains(extensions, pic.ext) {
				extensions = append(extensions, pic.ext)
			}
		}
		if s.notes != "" {
			notesCount++
			notesName := fmt.Sprintf("notesSlide%d.xml", notesCount)
			rels = append(rels, relationship{id: fmt.Sprintf("rId%d", len(rels)+1), kind: relNotesSlide, target: "../notesSlides/" + notesName})
			add("ppt/notesSlides/"+notesName, notesSlideXML(s.notes, p.language()))
			add("ppt/notesSlides/_rels/"+notesName+".rels", relationshipsXML([]relationship{
				{id: "rId1", kind: relNotesMaster, target: "../notesMasters/notesMaster1.xml"},
				{id: "rId2", kind: relSlide, target: fmt.Sprintf("../slides/slide%d.xml", n)},
			}))
			overrides = append(overrides, override{part: "/ppt/notesSlides/" + notesName, contentType: ctNotesSlide})
		}
		add(fmt.Sprintf("ppt/slides/slide%d.xml", n), slideXML(s, mediaRels, p.language()))
		add(fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n), relationshipsXML(rels))
		overrides = append(overrides, override{part: fmt.Sprintf("/ppt/slides/slide%d.xml", n), contentType: ctSlide})
	}

	themeName := "deckwright"
	add("ppt/presentation.xml", presentationXML(p.width, p.height, slideRels))
	add("ppt/_rels/presentation.xml.rels", relationshipsXML(presRels))
	add("ppt/presProps.xml", presPropsXML())
	add("ppt/slideMasters/slideMaster1.xml", slideMasterXML())
	add("ppt/slideMasters/_rels/slideMaster1.xml.rels", relationshipsXML([]relationship{
		{id: "rId1", kind: relSlideLayout, target: "../slideLayouts/slideLayout1.xml"},
		{id: "rId2", kind: relTheme, target: "../theme/theme1.xml"},
	}))
	add("ppt/slideLayouts/slideLayout1.xml", slideLayoutXML())
	add("ppt/slideLayouts/_rels/slideLayout1.xml.rels", relationshipsXML([]relationship{
		{id: "rId1", kind: relSlideMaster, target: "../slideMasters/slideMaster1.xml"},
	}))
	add("ppt/notesMasters/notesMaster1.xml", notesMasterXML())
	add("ppt/notesMasters/_rels/notesMaster1.xml.rels", relationshipsXML([]relationship{
		{id: "rId1", kind: relTheme, target: "../theme/theme2.xml"},
	}))
	add("ppt/theme/theme1.xml", themeXML(themeName, p.Palette))
	add("ppt/theme/theme2.xml", themeXML(themeName+" notes", p.Palette))
	add("docProps/core.xml", coreXML(p.Title, p.Creator, p.Created))
	add("docProps/app.xml", appXML(p.Creator, len(p.slides)))
	add("_rels/.rels", relationshipsXML([]relationship{
		{id: "rId1", kind: relOfficeDoc, target: "ppt/presentation.xml"},
		{id: "rId2", kind: relCore, target: "docProps/core.xml"},
		{id: "rId3", kind: relExtended, target: "docProps/app.xml"},
	}))

	overrides = append([]override{
		{part: "/ppt/presentation.xml", contentType: ctPresentation},
		{part: "/ppt/presProps.xml", contentType: ctPresProps},
		{part: "/ppt/slideMasters/slideMaster1.xml", contentType: ctSlideMaster},
		{part: "/ppt/slideLayouts/slideLayout1.xml", contentType: ctSlideLayout},
		{part: "/ppt/notesMasters/notesMaster1.xml", contentType: ctNotesMaster},
		{part: "/ppt/theme/theme1.xml", contentType: ctTheme},
		{part: "/ppt/theme/theme2.xml", contentType: ctTheme},
		{part: "/docProps/core.xml", contentType: ctCore},
		{part: "/docProps/app.xml", contentType: ctExtended},
	}, overrides...)

	// The content types part must come first in the archive.
	return append([]part{{name: "[Content_Types].xml", data: []byte(contentTypesXML(extensions, overrides))}}, out...)
}
