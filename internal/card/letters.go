package card

// Class is the tonal class of a Thai consonant.
type Class string

const (
	// ClassHigh is a high-class consonant.
	ClassHigh Class = "high"
	// ClassMid is a mid-class consonant.
	ClassMid Class = "mid"
	// ClassLow is a low-class consonant.
	ClassLow Class = "low"
)

// Letter is one consonant of the Thai alphabet.
type Letter struct {
	Glyph    string // the bare consonant
	FullName string // the acrophonic name, e.g. "ก ไก่"
	Class    Class
	Meaning  string // English meaning of the name word
}

// letters is the full 44-consonant alphabet, in dictionary order.
var letters = []Letter{
	{"ก", "ก ไก่", ClassMid, "chicken"},
	{"ข", "ข ไข่", ClassHigh, "egg"},
	{"ฃ", "ฃ ขวด", ClassHigh, "bottle (obsolete)"},
	{"ค", "ค ควาย", ClassLow, "buffalo"},
	{"ฅ", "ฅ คน", ClassLow, "person (obsolete)"},
	{"ฆ", "ฆ ระฆัง", ClassLow, "bell"},
	{"ง", "ง งู", ClassLow, "snake"},
	{"จ", "จ จาน", ClassMid, "plate"},
	{"ฉ", "ฉ ฉิ่ง", ClassHigh, "cymbals"},
	{"ช", "ช ช้าง", ClassLow, "elephant"},
	{"ซ", "ซ โซ่", ClassLow, "chain"},
	{"ฌ", "ฌ เฌอ", ClassLow, "tree"},
	{"ญ", "ญ หญิง", ClassLow, "woman"},
	{"ฎ", "ฎ ชฎา", ClassMid, "Thai headdress"},
	{"ฏ", "ฏ ปฏัก", ClassMid, "spear"},
	{"ฐ", "ฐ ฐาน", ClassHigh, "base / pedestal"},
	{"ฑ", "ฑ มณโฑ", ClassLow, "Montho (character)"},
	{"ฒ", "ฒ ผู้เฒ่า", ClassLow, "old man"},
	{"ณ", "ณ เณร", ClassLow, "novice monk"},
	{"ด", "ด เด็ก", ClassMid, "child"},
	{"ต", "ต เต่า", ClassMid, "turtle"},
	{"ถ", "ถ ถุง", ClassHigh, "bag / sack"},
	{"ท", "ท ทหาร", ClassLow, "soldier"},
	{"ธ", "ธ ธง", ClassLow, "flag"},
	{"น", "น หนู", ClassLow, "mouse / rat"},
	{"บ", "บ ใบไม้", ClassMid, "leaf"},
	{"ป", "ป ปลา", ClassMid, "fish"},
	{"ผ", "ผ ผึ้ง", ClassHigh, "bee"},
	{"ฝ", "ฝ ฝา", ClassHigh, "lid / cover"},
	{"พ", "พ พาน", ClassLow, "tray"},
	{"ฟ", "ฟ ฟัน", ClassLow, "teeth"},
	{"ภ", "ภ สำเภา", ClassLow, "junk (sailing ship)"},
	{"ม", "ม ม้า", ClassLow, "horse"},
	{"ย", "ย ยักษ์", ClassLow, "giant / ogre"},
	{"ร", "ร เรือ", ClassLow, "boat"},
	{"ล", "ล ลิง", ClassLow, "monkey"},
	{"ว", "ว แหวน", ClassLow, "ring"},
	{"ศ", "ศ ศาลา", ClassHigh, "pavilion"},
	{"ษ", "ษ ฤๅษี", ClassHigh, "hermit"},
	{"ส", "ส เสือ", ClassHigh, "tiger"},
	{"ห", "ห หีบ", ClassHigh, "chest / box"},
	{"ฬ", "ฬ จุฬา", ClassLow, "kite"},
	{"อ", "อ อ่าง", ClassMid, "basin / tub"},
	{"ฮ", "ฮ นกฮูก", ClassLow, "owl"},
}

// Letters returns the built-in alphabet deck. The audio text is the
// letter's full name, since speaking the bare glyph is ambiguous.
func Letters() *Deck {
	cards := make([]Card, len(letters))
	for i, l := range letters {
		cards[i] = Card{
			Thai:      l.Glyph,
			Eng:       l.Meaning,
			Phonetic:  string(l.Class) + " class",
			AudioText: l.FullName,
		}
	}
	return &Deck{
		ID:       "letters",
		Name:     "Thai Letters",
		Category: CategoryLetters,
		Cards:    cards,
		Hash:     ContentHash(cards),
	}
}
