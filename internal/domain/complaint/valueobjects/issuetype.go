package valueobjects

import "fmt"

type IssueType string

const (
	IssueTypePothole      IssueType = "pothole"
	IssueTypeGarbage      IssueType = "garbage"
	IssueTypeStreetlight  IssueType = "streetlight"
	IssueTypeWaterLeakage IssueType = "water_leakage"
	IssueTypePublicSafety IssueType = "public_safety"
	IssueTypeOther        IssueType = "other"
)

var validIssueTypes = map[IssueType]bool{
	IssueTypePothole:      true,
	IssueTypeGarbage:      true,
	IssueTypeStreetlight:  true,
	IssueTypeWaterLeakage: true,
	IssueTypePublicSafety: true,
	IssueTypeOther:        true,
}

func (t IssueType) String() string {
	return string(t)
}

func (t IssueType) IsValid() bool {
	return validIssueTypes[t]
}

func NewIssueType(s string) (IssueType, error) {
	t := IssueType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid issue type: %s", s)
	}
	return t, nil
}
