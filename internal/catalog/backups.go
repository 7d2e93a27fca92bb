package catalog

import (
	"github.com/vietdv277/rdsctl/internal/aws"
	"github.com/vietdv277/rdsctl/internal/invoke"
)

var backupOperations = []Operation{
	invoke.Define("DescribeDBClusterAutomatedBackups", aws.RDSAPI.DescribeDBClusterAutomatedBackups, invoke.Spec{
		Short:  "Describe retained automated backups of deleted DB clusters",
		Impact: invoke.ImpactNone,
		Output: "DBClusterAutomatedBackups",
		Params: []invoke.Param{
			{Name: "DbClusterResourceId", Kind: invoke.KindString, Positional: true, Usage: "resource id of the DB cluster"},
			{Name: "DBClusterIdentifier", Kind: invoke.KindString, Usage: "identifier of the DB cluster"},
			filtersParam(),
			maxRecordsParam(),
			markerParam(),
		},
	}),
	invoke.Define("DeleteDBClusterAutomatedBackup", aws.RDSAPI.DeleteDBClusterAutomatedBackup, invoke.Spec{
		Short:  "Delete a retained automated backup of a DB cluster",
		Impact: invoke.ImpactHigh,
		Output: "DBClusterAutomatedBackup",
		Params: []invoke.Param{
			identifier("DbClusterResourceId", "resource id of the source DB cluster"),
		},
	}),
	invoke.Define("DeleteDBInstanceAutomatedBackup", aws.RDSAPI.DeleteDBInstanceAutomatedBackup, invoke.Spec{
		Short:  "Delete a retained automated backup of a DB instance",
		Impact: invoke.ImpactHigh,
		Output: "DBInstanceAutomatedBackup",
		Params: []invoke.Param{
			{Name: "DbiResourceId", Kind: invoke.KindString, Positional: true, Usage: "resource id of the source DB instance"},
			{Name: "DBInstanceAutomatedBackupsArn", Kind: invoke.KindString, Usage: "ARN of the automated backup"},
		},
		RequireOneOf: []string{"DbiResourceId", "DBInstanceAutomatedBackupsArn"},
	}),
}
