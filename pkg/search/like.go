package search

import "strings"

// LikeEscape is the escape character paired with LikePrefix patterns.
const LikeEscape = `\`

var likeReplacer = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// LikePrefix returns a LIKE pattern matching values that start with prefix.
// Wildcards inside prefix are escaped with LikeEscape.
func LikePrefix(prefix string) string {
	return likeReplacer.Replace(prefix) + "%"
}
