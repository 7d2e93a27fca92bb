package catalog

import (
	"github.com/vietdv277/rdsctl/internal/aws"
	"github.com/vietdv277/rdsctl/internal/invoke"
)

var snapshotOperations = []Operation{
	invoke.Define("DescribeDBSnapshotAttributes", aws.RDSAPI.DescribeDBSnapshotAttributes, invoke.Spec{
		Short:  "List the attributes (such as restore permissions) of a DB snapshot",
		Impact: invoke.ImpactNone,
		Output: "DBSnapshotAttributesResult",
		Params: []invoke.Param{
			identifier("DBSnapshotIdentifier", "identifier of the DB snapshot"),
		},
	}),
	invoke.Define("ModifyDBSnapshotAttribute", aws.RDSAPI.ModifyDBSnapshotAttribute, invoke.Spec{
		Short:  "Add or remove accounts allowed to restore a manual DB snapshot",
		Impact: invoke.ImpactMedium,
		Output: "DBSnapshotAttributesResult",
		Params: []invoke.Param{
			identifier("DBSnapshotIdentifier", "identifier of the DB snapshot"),
			{Name: "AttributeName", Kind: invoke.KindString, Requirement: invoke.Mandatory, Usage: "attribute to modify, usually \"restore\""},
			{Name: "ValuesToAdd", Kind: invoke.KindStrings, Usage: "account ids (or \"all\") to add"},
			{Name: "ValuesToRemove", Kind: invoke.KindStrings, Usage: "account ids (or \"all\") to remove"},
		},
	}),
	invoke.Define("DescribeDBClusterSnapshotAttributes", aws.RDSAPI.DescribeDBClusterSnapshotAttributes, invoke.Spec{
		Short:  "List the attributes of a DB cluster snapshot",
		Impact: invoke.ImpactNone,
		Output: "DBClusterSnapshotAttributesResult",
		Params: []invoke.Param{
			identifier("DBClusterSnapshotIdentifier", "identifier of the DB cluster snapshot"),
		},
	}),
	invoke.Define("DescribeDBSnapshots", aws.RDSAPI.DescribeDBSnapshots, invoke.Spec{
		Short:  "Describe DB snapshots",
		Impact: invoke.ImpactNone,
		Output: "DBSnapshots",
		Params: []invoke.Param{
			{Name: "DBSnapshotIdentifier", Kind: invoke.KindString, Positional: true, Usage: "identifier of a single snapshot"},
			{Name: "DBInstanceIdentifier", Kind: invoke.KindString, Usage: "only snapshots of this DB instance"},
			{Name: "DbiResourceId", Kind: invoke.KindString, Usage: "only snapshots of this instance resource id"},
			{Name: "SnapshotType", Kind: invoke.KindString, Usage: "automated, manual, shared, public or awsbackup"},
			{Name: "IncludeShared", Kind: invoke.KindBool, Usage: "include snapshots shared from other accounts"},
			{Name: "IncludePublic", Kind: invoke.KindBool, Usage: "include public snapshots"},
			filtersParam(),
			maxRecordsParam(),
			markerParam(),
		},
	}),
	invoke.Define("CreateDBSnapshot", aws.RDSAPI.CreateDBSnapshot, invoke.Spec{
		Short:  "Create a manual snapshot of a DB instance",
		Impact: invoke.ImpactMedium,
		Output: "DBSnapshot",
		Params: []invoke.Param{
			identifier("DBSnapshotIdentifier", "identifier for the new snapshot"),
			{Name: "DBInstanceIdentifier", Kind: invoke.KindString, Requirement: invoke.Identifying, Usage: "DB instance to snapshot"},
			{Name: "Tags", Kind: invoke.KindTags, Usage: "tag as Key=Value (repeatable)"},
		},
	}),
	invoke.Define("DeleteDBSnapshot", aws.RDSAPI.DeleteDBSnapshot, invoke.Spec{
		Short:  "Delete a manual DB snapshot",
		Impact: invoke.ImpactHigh,
		Output: "DBSnapshot",
		Params: []invoke.Param{
			identifier("DBSnapshotIdentifier", "identifier of the DB snapshot"),
		},
	}),
	invoke.Define("DeleteDBClusterSnapshot", aws.RDSAPI.DeleteDBClusterSnapshot, invoke.Spec{
		Short:  "Delete a manual DB cluster snapshot",
		Impact: invoke.ImpactHigh,
		Output: "DBClusterSnapshot",
		Params: []invoke.Param{
			identifier("DBClusterSnapshotIdentifier", "identifier of the DB cluster snapshot"),
		},
	}),
}
