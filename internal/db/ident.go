package db

// IsValidIdentifier returns true if s matches [a-zA-Z0-9_]+ and does not start with a digit.
func IsValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		isAlpha := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		if isDigit && i == 0 {
			return false
		}
		if !isAlpha && !isDigit && r != '_' {
			return false
		}
	}
	return true
}
