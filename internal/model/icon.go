package model

// IconKey names a display icon. The core only carries the key; glyphs are
// resolved by the presentation layer.
type IconKey string

// Known icon keys
const (
	IconSchool         IconKey = "FaSchool"
	IconUniversity     IconKey = "FaUniversity"
	IconHome           IconKey = "FaHome"
	IconPlaceOfWorship IconKey = "FaPlaceOfWorship"
	IconHospital       IconKey = "FaHospital"
	IconCorporate      IconKey = "MdCorporateFare"
	IconPayment        IconKey = "MdPayment"
	IconDashboard      IconKey = "AiOutlineDashboard"
	IconShop           IconKey = "AiOutlineShop"
	IconBank           IconKey = "GiBank"
	IconTicket         IconKey = "GiTicket"
	IconFile           IconKey = "FaFileAlt"
	IconChalkboard     IconKey = "FaChalkboard"
	IconLink           IconKey = "FaLink"
	IconVideo          IconKey = "FaVideo"
	IconFolder         IconKey = "FaFolder"
	IconMobile         IconKey = "FaMobileAlt"
	IconCopy           IconKey = "FaCopy"
)

var iconKeys = []IconKey{
	IconSchool, IconUniversity, IconHome, IconPlaceOfWorship,
	IconHospital, IconCorporate, IconPayment, IconDashboard,
	IconShop, IconBank, IconTicket, IconFile,
	IconChalkboard, IconLink, IconVideo, IconFolder,
	IconMobile, IconCopy,
}

var knownIcons = func() map[IconKey]bool {
	m := make(map[IconKey]bool, len(iconKeys))
	for _, k := range iconKeys {
		m[k] = true
	}
	return m
}()

// IconKeys returns every known key
func IconKeys() []IconKey {
	return append([]IconKey(nil), iconKeys...)
}

// Known returns true if the key is part of the icon set
func (k IconKey) Known() bool {
	return knownIcons[k]
}
