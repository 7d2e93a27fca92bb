package catalog

import (
	"github.com/vietdv277/rdsctl/internal/aws"
	"github.com/vietdv277/rdsctl/internal/invoke"
)

var instanceOperations = []Operation{
	invoke.Define("DescribeDBInstances", aws.RDSAPI.DescribeDBInstances, invoke.Spec{
		Short:  "Describe DB instances",
		Impact: invoke.ImpactNone,
		Output: "DBInstances",
		Params: []invoke.Param{
			{Name: "DBInstanceIdentifier", Kind: invoke.KindString, Positional: true, Usage: "identifier of a single instance"},
			filtersParam(),
			maxRecordsParam(),
			markerParam(),
		},
	}),
	invoke.Define("DescribeDBClusters", aws.RDSAPI.DescribeDBClusters, invoke.Spec{
		Short:  "Describe DB clusters",
		Impact: invoke.ImpactNone,
		Output: "DBClusters",
		Params: []invoke.Param{
			{Name: "DBClusterIdentifier", Kind: invoke.KindString, Positional: true, Usage: "identifier of a single cluster"},
			{Name: "IncludeShared", Kind: invoke.KindBool, Usage: "include clusters shared from other accounts"},
			filtersParam(),
			maxRecordsParam(),
			markerParam(),
		},
	}),
	invoke.Define("RebootDBInstance", aws.RDSAPI.RebootDBInstance, invoke.Spec{
		Short:  "Reboot a DB instance",
		Impact: invoke.ImpactMedium,
		Output: "DBInstance",
		Params: []invoke.Param{
			identifier("DBInstanceIdentifier", "identifier of the DB instance"),
			{Name: "ForceFailover", Kind: invoke.KindBool, Usage: "reboot through a Multi-AZ failover"},
		},
	}),
	invoke.Define("StartDBInstance", aws.RDSAPI.StartDBInstance, invoke.Spec{
		Short:  "Start a stopped DB instance",
		Impact: invoke.ImpactMedium,
		Output: "DBInstance",
		Params: []invoke.Param{
			identifier("DBInstanceIdentifier", "identifier of the DB instance"),
		},
	}),
	invoke.Define("StopDBInstance", aws.RDSAPI.StopDBInstance, invoke.Spec{
		Short:  "Stop a DB instance",
		Impact: invoke.ImpactHigh,
		Output: "DBInstance",
		Params: []invoke.Param{
			identifier("DBInstanceIdentifier", "identifier of the DB instance"),
			{Name: "DBSnapshotIdentifier", Kind: invoke.KindString, Usage: "take a snapshot with this identifier before stopping"},
		},
	}),
	invoke.Define("DeleteDBInstance", aws.RDSAPI.DeleteDBInstance, invoke.Spec{
		Short:  "Delete a DB instance",
		Impact: invoke.ImpactHigh,
		Output: "DBInstance",
		Params: []invoke.Param{
			identifier("DBInstanceIdentifier", "identifier of the DB instance"),
			{Name: "SkipFinalSnapshot", Kind: invoke.KindBool, Usage: "skip the final snapshot"},
			{Name: "FinalDBSnapshotIdentifier", Kind: invoke.KindString, Usage: "identifier of the final snapshot"},
			{Name: "DeleteAutomatedBackups", Kind: invoke.KindBool, Usage: "delete automated backups immediately"},
		},
	}),
}
