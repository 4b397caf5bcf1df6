// Package thai converts integers to their spoken Thai representation.
// The output is what gets handed to the speech engine for the number
// dictation game, so it follows spoken rules rather than digit-by-digit
// reading: ยี่สิบ for twenty, เอ็ด for a trailing one, and so on.
package thai

import "strconv"

// MaxNumber is the largest value the converter handles. Seven digits is
// all the dictation game ever asks for.
const MaxNumber = 9999999

var digits = [10]string{"ศูนย์", "หนึ่ง", "สอง", "สาม", "สี่", "ห้า", "หก", "เจ็ด", "แปด", "เก้า"}

var places = [6]string{"แสน", "หมื่น", "พัน", "ร้อย", "สิบ", ""}

// Words returns the Thai words for n. Values outside [0, MaxNumber] fall
// back to the plain decimal string so callers always get something
// speakable.
func Words(n int) string {
	if n == 0 {
		return digits[0]
	}
	if n < 0 || n > MaxNumber {
		return strconv.Itoa(n)
	}

	var out string
	if n >= 1000000 {
		out = underMillion(n/1000000) + "ล้าน"
		n %= 1000000
	}
	if n > 0 {
		out += underMillion(n)
	}
	return out
}

// underMillion converts 1..999999. The tens place and the units place
// carry the irregular forms: 2x is ยี่สิบ, 1x is bare สิบ, and a final 1
// after any other digit is เอ็ด.
func underMillion(n int) string {
	if n == 0 {
		return ""
	}

	s := strconv.Itoa(n)
	for len(s) < 6 {
		s = "0" + s
	}

	var out string
	for i := 0; i < 6; i++ {
		d := int(s[i] - '0')
		if d == 0 {
			continue
		}
		switch place := places[i]; place {
		case "สิบ":
			switch d {
			case 1:
				out += "สิบ"
			case 2:
				out += "ยี่สิบ"
			default:
				out += digits[d] + "สิบ"
			}
		case "":
			if d == 1 && n > 1 {
				out += "เอ็ด"
			} else {
				out += digits[d]
			}
		default:
			out += digits[d] + place
		}
	}
	return out
}
