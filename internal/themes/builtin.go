package themes

// Builtin theme keys.
const (
	KeyEorzea    = "eorzea"
	KeyFarEast   = "far_east"
	KeyGarlemald = "garlemald"
)

// DefaultKey is the theme used when none is requested.
const DefaultKey = KeyEorzea

func builtin() []Theme {
	return []Theme{eorzea(), farEast(), garlemald()}
}

func eorzea() Theme {
	return Theme{
		Key:                KeyEorzea,
		RegionName:         "Eorzean",
		ShortPrefix:        "EFL",
		PremierTitle:       "Eorzean Premier League",
		ChampionshipTitle:  "Grand Company Championship",
		LowerDivisionTitle: "City-State Division",
		Highlight:          "The heart of the realm where Gridania, Limsa Lominsa, Ul'dah, and Ishgard compete.",
		Locations: []string{
			"Gridania", "Limsa Lominsa", "Ul'dah", "Ishgard", "Sharlayan",
			"Radz-at-Han", "Mor Dhona", "La Noscea", "Coerthas", "Thanalan",
			"The Dravanian Forelands", "Lakeland", "Thavnair", "Old Sharlayan", "Labyrinthos",
			"Kugane", "Idyllshire", "Garlemald Reclaimed", "The Crystarium", "Old Gridania",
		},
		Mascots: []string{
			"Scions", "Seedseers", "Maelstrom", "Immortals", "Temple Knights",
			"Astrologians", "Nald'thal", "Azure Drakes", "Carbuncle", "Chocobos",
			"Free Paladins", "Gobwalkers", "Sky Pirates", "Radiant Dawn", "House Fortemps",
			"Conjurers", "Adders", "Flames", "Blades", "Dragoons",
		},
		Adjectives: []string{
			"Twin", "Rising", "Mythril", "Heavensward", "Stormborn",
			"Starlit", "Ruby", "Umbral", "Astral", "Azure",
			"Verdant", "Gilded", "Crystalline", "Eternal", "Radiant",
		},
		Inspirations: []string{
			"Scions of the Seventh Dawn", "Order of the Twin Adder", "Immortal Flames",
			"Maelstrom", "Temple Knights", "Ishgardian Restoration", "Crystarium Guard",
			"Students of Baldesion", "Radz-at-Han alchemists", "Sharlayan Forum",
			"Bozjan Resistance",
		},
		NotesTemplates: []string{
			"Backed by the {inspiration} from {location}.",
			"Founded by veterans of the {inspiration}.",
			"Club culture steeped in {inspiration} tradition.",
			"Hails from {location} with {inspiration} influence.",
		},
	}
}

func farEast() Theme {
	return Theme{
		Key:                KeyFarEast,
		RegionName:         "Far Eastern",
		ShortPrefix:        "FEF",
		PremierTitle:       "Kugane Premier Division",
		ChampionshipTitle:  "Hingan Championship",
		LowerDivisionTitle: "Eastern League",
		Highlight:          "The trading ports of Kugane, the rebel lands of Doma, and the wandering Steppe tribes collide.",
		Locations: []string{
			"Kugane", "Doma", "Yanxia", "The Azim Steppe", "Hingashi",
			"Sui-no-Sato", "The Ruby Sea", "Isari", "Namai", "Tsurumi",
			"Shisui of the Violet Tides", "Reunion", "Tamamizu", "Shirogane", "Onokoro",
			"Seigetsu",
		},
		Mascots: []string{
			"Sekiseigumi", "Raen", "Xaela", "Ruby Ronin", "Steppe Riders",
			"Doman Clans", "Geiko", "Raijin", "Komainu", "Crimson Lancers",
			"Blue Oni", "Sea Wolves", "Tengu", "Moonlit Ronin", "Skyfarers",
		},
		Adjectives: []string{
			"Blossom", "Moonlit", "Stormjade", "Tempest", "Crimson",
			"Azure", "Sakura", "Silver", "Verdant", "Dragon",
		},
		Inspirations: []string{
			"Sekiseigumi", "House of the Fierce", "Confederacy", "Doman Liberation Front",
			"Mol Warriors", "Seiryu Temple", "Tales of the Ruby Princess",
		},
		NotesTemplates: []string{
			"Backed by the {inspiration} from {location}.",
			"Combines tactics from the {inspiration} with Far Eastern flair.",
			"Favoured by sailors of the {inspiration}.",
		},
	}
}

func garlemald() Theme {
	return Theme{
		Key:                KeyGarlemald,
		RegionName:         "Imperial",
		ShortPrefix:        "IGL",
		PremierTitle:       "Imperial Supremacy League",
		ChampionshipTitle:  "Praetoriate Championship",
		LowerDivisionTitle: "Legion Divisions",
		Highlight:          "Reformed Garlean legions and liberated provinces contest the imperial title.",
		Locations: []string{
			"Garlemald", "Bozja", "Werlyt", "Dalmasca", "Ala Mhigo",
			"Terncliff", "Paglth'an", "Corvos", "Iskaal", "Locus Amoenus",
			"Porta Praetoria", "Tertium", "Zadnor",
		},
		Mascots: []string{
			"Magitek", "Legati", "Centurions", "Ceruleum", "Gunblades",
			"Dreadnaughts", "Praetorians", "Machina", "Imperial Fangs", "Ala Mhigan Shields",
			"Resistance",
		},
		Adjectives: []string{
			"Adamant", "Iron", "Cerulean", "Imperial", "Reborn",
			"Resolute", "Steel", "Vanguard",
		},
		Inspirations: []string{
			"IVth Legion", "Bozjan Resistance", "Werlyt Rebellion",
			"Dalmascan Royalists", "Ala Mhigan Monks", "Corvos Insurgents",
		},
		NotesTemplates: []string{
			"Former {inspiration} unit now focused on footballing glory.",
			"Uses magitek support from {location}.",
			"Celebrates {inspiration} heritage in every match.",
		},
	}
}
