package device

import "strings"

type SupportedDevice struct {
	VendorID    string
	ProductID   string
	Description string
}

// SupportedDevices is the compiled-in allow-list. IDs are 4 uppercase hex digits.
var SupportedDevices = []SupportedDevice{
	{VendorID: "04B4", ProductID: "0101", Description: "Cypress Semiconductor Device"},
}

// NormalizeHex4 strips ASCII whitespace, uppercases and left-pads with '0' or truncates
// to exactly four characters.
func NormalizeHex4(in string) string {
	b := make([]byte, 0, len(in))
	for i := 0; i < len(in); i++ {
		c := in[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f':
			continue
		case c >= 'a' && c <= 'z':
			c -= 'a' - 'A'
		}
		b = append(b, c)
	}

	s := string(b)
	if len(s) < 4 {
		s = strings.Repeat("0", 4-len(s)) + s
	}
	if len(s) > 4 {
		s = s[:4]
	}
	return s
}

// Lookup returns the allow-list entry for a vendor/product pair, if any.
func Lookup(vid, pid string) (SupportedDevice, bool) {
	v, p := NormalizeHex4(vid), NormalizeHex4(pid)
	for _, dev := range SupportedDevices {
		if dev.VendorID == v && dev.ProductID == p {
			return dev, true
		}
	}
	return SupportedDevice{}, false
}

func IsSupported(vid, pid string) bool {
	_, ok := Lookup(vid, pid)
	return ok
}

// ExtractVidPid pulls the vendor and product IDs out of a hardware ID such as
// `USB\VID_04B4&PID_0101\6&1A2B`. Missing parts are returned empty.
func ExtractVidPid(hardwareID string) (vid, pid string) {
	upper := strings.ToUpper(hardwareID)
	return hexAfter(upper, "VID_"), hexAfter(upper, "PID_")
}

func hexAfter(s, marker string) string {
	idx := strings.Index(s, marker)
	if idx < 0 {
		return ""
	}

	rest := s[idx+len(marker):]
	end := 0
	for end < len(rest) && end < 4 && isHex(rest[end]) {
		end++
	}
	return rest[:end]
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'A' && c <= 'F')
}
