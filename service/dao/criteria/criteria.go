// Package criteria evaluates dao list filters against process records.
package criteria

import (
	"github.com/viant/quantor/model/proc"
	"github.com/viant/quantor/service/dao"
)

// FilterByState reports whether a record in the given state passes the
// supplied parameters. An empty parameter list admits everything.
func FilterByState(state proc.State, parameters []*dao.Parameter) bool {
	switch len(parameters) {
	case 0:
		return true
	case 1:
		if parameters[0].Name == "State" {
			switch actual := parameters[0].Value.(type) {
			case string:
				return string(state) == actual
			case []string:
				for _, s := range actual {
					if string(state) == s {
						return true
					}
				}
				return false
			}
		}
	}
	return true
}
