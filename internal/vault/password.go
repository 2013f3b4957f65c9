package vault

// passwordSymbols is the fixed set of special characters accepted by the
// strength rule.
const passwordSymbols = "@#$%^&+=!"

// ValidateStrength reports whether a master password meets the fixed policy:
// at least 8 characters, with at least one uppercase ASCII letter, one
// lowercase ASCII letter, one digit and one symbol from passwordSymbols.
//
// Pure function, shared by user creation and master-password change.
func ValidateStrength(password string) bool {
	if len(password) < 8 {
		return false
	}

	var upper, lower, digit, symbol bool
	for _, c := range password {
		switch {
		case c >= 'A' && c <= 'Z':
			upper = true
		case c >= 'a' && c <= 'z':
			lower = true
		case c >= '0' && c <= '9':
			digit = true
		default:
			for _, s := range passwordSymbols {
				if c == s {
					symbol = true
					break
				}
			}
		}
	}
	return upper && lower && digit && symbol
}
