// Package catalog is the table of RDS operations exposed as commands.
package catalog

import (
	"slices"
	"strings"

	"github.com/vietdv277/rdsctl/internal/aws"
	"github.com/vietdv277/rdsctl/internal/invoke"
)

// Operation is an invocable RDS operation.
type Operation = invoke.Operation[aws.RDSAPI]

var table = append(append(append(append(append([]Operation(nil), snapshotOperations...), backupOperations...), proxyOperations...), instanceOperations...), tagOperations...)

// All returns every operation in a stable order.
func All() []Operation {
	return slices.Clone(table)
}

// Lookup finds an operation by its API name (DeleteDBProxyEndpoint) or its
// command name (delete-db-proxy-endpoint).
func Lookup(name string) (Operation, bool) {
	for _, op := range table {
		spec := op.Spec()
		if strings.EqualFold(spec.Name, name) || spec.Command() == name {
			return op, true
		}
	}
	return nil, false
}

// Parameters shared by the describe family.

func filtersParam() invoke.Param {
	return invoke.Param{Name: "Filters", Kind: invoke.KindFilters, Usage: "filter as Name=value[,value...] (repeatable)"}
}

func maxRecordsParam() invoke.Param {
	return invoke.Param{Name: "MaxRecords", Kind: invoke.KindInt32, Usage: "maximum number of records in the response (20-100)"}
}

func markerParam() invoke.Param {
	return invoke.Param{Name: "Marker", Kind: invoke.KindString, Usage: "pagination token from a previous response"}
}

func identifier(name, usage string) invoke.Param {
	return invoke.Param{Name: name, Kind: invoke.KindString, Requirement: invoke.Identifying, Positional: true, Usage: usage}
}
