package catalog

import (
	"github.com/vietdv277/rdsctl/internal/aws"
	"github.com/vietdv277/rdsctl/internal/invoke"
)

var proxyOperations = []Operation{
	invoke.Define("DescribeDBProxies", aws.RDSAPI.DescribeDBProxies, invoke.Spec{
		Short:  "Describe DB proxies",
		Impact: invoke.ImpactNone,
		Output: "DBProxies",
		Params: []invoke.Param{
			{Name: "DBProxyName", Kind: invoke.KindString, Positional: true, Usage: "name of a single proxy"},
			filtersParam(),
			maxRecordsParam(),
			markerParam(),
		},
	}),
	invoke.Define("DescribeDBProxyEndpoints", aws.RDSAPI.DescribeDBProxyEndpoints, invoke.Spec{
		Short:  "Describe DB proxy endpoints",
		Impact: invoke.ImpactNone,
		Output: "DBProxyEndpoints",
		Params: []invoke.Param{
			{Name: "DBProxyEndpointName", Kind: invoke.KindString, Positional: true, Usage: "name of a single endpoint"},
			{Name: "DBProxyName", Kind: invoke.KindString, Usage: "only endpoints of this proxy"},
			filtersParam(),
			maxRecordsParam(),
			markerParam(),
		},
	}),
	invoke.Define("DeleteDBProxy", aws.RDSAPI.DeleteDBProxy, invoke.Spec{
		Short:  "Delete a DB proxy",
		Impact: invoke.ImpactHigh,
		Output: "DBProxy",
		Params: []invoke.Param{
			identifier("DBProxyName", "name of the proxy"),
		},
	}),
	invoke.Define("DeleteDBProxyEndpoint", aws.RDSAPI.DeleteDBProxyEndpoint, invoke.Spec{
		Short:  "Delete a DB proxy endpoint",
		Impact: invoke.ImpactHigh,
		Output: "DBProxyEndpoint",
		Params: []invoke.Param{
			identifier("DBProxyEndpointName", "name of the proxy endpoint"),
		},
	}),
}
