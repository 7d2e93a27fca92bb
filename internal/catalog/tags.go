package catalog

import (
	"github.com/vietdv277/rdsctl/internal/aws"
	"github.com/vietdv277/rdsctl/internal/invoke"
)

var tagOperations = []Operation{
	invoke.Define("ListTagsForResource", aws.RDSAPI.ListTagsForResource, invoke.Spec{
		Short:  "List the tags on an RDS resource",
		Impact: invoke.ImpactNone,
		Output: "TagList",
		Params: []invoke.Param{
			identifier("ResourceName", "ARN of the resource"),
			filtersParam(),
		},
	}),
	invoke.Define("AddTagsToResource", aws.RDSAPI.AddTagsToResource, invoke.Spec{
		Short:  "Add tags to an RDS resource",
		Impact: invoke.ImpactMedium,
		Params: []invoke.Param{
			identifier("ResourceName", "ARN of the resource"),
			{Name: "Tags", Kind: invoke.KindTags, Requirement: invoke.Mandatory, Usage: "tag as Key=Value (repeatable)"},
		},
	}),
	invoke.Define("RemoveTagsFromResource", aws.RDSAPI.RemoveTagsFromResource, invoke.Spec{
		Short:  "Remove tags from an RDS resource",
		Impact: invoke.ImpactMedium,
		Params: []invoke.Param{
			identifier("ResourceName", "ARN of the resource"),
			{Name: "TagKeys", Kind: invoke.KindStrings, Requirement: invoke.Mandatory, Usage: "tag keys to remove"},
		},
	}),
}
