package rename

import "maps"

// defaultSpecialCases lists operator entities whose names do not follow the
// parent-prefix convention. They always map to the fixed short name.
var defaultSpecialCases = map[string]string{
	"WhereOperatorSubstractionExact": "SubstractionExact",
	"WhereOperatorSubstractionRange": "SubstractionRange",
	"WhereOperatorSumExact":          "SumExact",
	"WhereOperatorSumRange":          "SumRange",
	"WhereOperatorNumber":            "Number",
}

// DefaultSpecialCases returns a copy of the built-in override table.
func DefaultSpecialCases() map[string]string {
	return maps.Clone(defaultSpecialCases)
}

// mergeSpecialCases layers extra on top of the defaults. Entries in extra win.
func mergeSpecialCases(extra map[string]string) map[string]string {
	merged := DefaultSpecialCases()
	maps.Copy(merged, extra)
	return merged
}
