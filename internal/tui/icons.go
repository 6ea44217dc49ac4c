package tui

import "github.com/existflow/credboard/internal/model"

const (
	defaultSectionGlyph    = "▣"
	defaultAttachmentGlyph = "📎"
)

var glyphs = map[model.IconKey]string{
	model.IconSchool:         "🏫",
	model.IconUniversity:     "🏛",
	model.IconHome:           "🏠",
	model.IconPlaceOfWorship: "⛪",
	model.IconHospital:       "🏥",
	model.IconCorporate:      "🏢",
	model.IconPayment:        "💳",
	model.IconDashboard:      "📊",
	model.IconShop:           "🏪",
	model.IconBank:           "🏦",
	model.IconTicket:         "🎫",
	model.IconFile:           "📄",
	model.IconChalkboard:     "📋",
	model.IconLink:           "🔗",
	model.IconVideo:          "🎬",
	model.IconFolder:         "📁",
	model.IconMobile:         "📱",
	model.IconCopy:           "📑",
}

func glyph(k model.IconKey, fallback string) string {
	if !k.Known() {
		return fallback
	}
	if g, ok := glyphs[k]; ok {
		return g
	}
	return fallback
}

func sectionGlyph(k model.IconKey) string {
	return glyph(k, defaultSectionGlyph)
}

func attachmentGlyph(k model.IconKey) string {
	return glyph(k, defaultAttachmentGlyph)
}
