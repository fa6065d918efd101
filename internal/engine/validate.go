package engine

import (
	"fmt"

	apperrors "socialdash/pkg/errors"
)

// Validate checks the load-time contract the aggregation code trusts:
// non-empty unique names per period and non-negative metrics. The engine
// itself never calls it.
func Validate(ds *Dataset) error {
	for _, key := range ds.periods.keys {
		if key == "" {
			return apperrors.NewValidationError("empty period key", "period", key)
		}
		seen := make(map[string]struct{}, len(ds.records[key]))
		for i, r := range ds.records[key] {
			where := fmt.Sprintf("%s[%d]", key, i)
			if r.Name == "" {
				return apperrors.NewValidationError("empty company name at "+where, "company_name", r.Name)
			}
			if _, dup := seen[r.Name]; dup {
				return apperrors.NewValidationError("duplicate company name at "+where, "company_name", r.Name)
			}
			seen[r.Name] = struct{}{}

			switch {
			case r.Followers < 0:
				return apperrors.NewValidationError("negative followers at "+where, "followers", r.Followers)
			case r.EngagementRate < 0:
				return apperrors.NewValidationError("negative er_percent at "+where, "er_percent", r.EngagementRate)
			case r.AvgLikes < 0:
				return apperrors.NewValidationError("negative avg_likes at "+where, "avg_likes", r.AvgLikes)
			case r.AvgComments < 0:
				return apperrors.NewValidationError("negative avg_comments at "+where, "avg_comments", r.AvgComments)
			case r.PostingFrequency < 0:
				return apperrors.NewValidationError("negative posting_frequency at "+where, "posting_frequency", r.PostingFrequency)
			}
		}
	}
	return nil
}
