package valueobjects

import "fmt"

type Department string

const (
	DepartmentRoads        Department = "roads"
	DepartmentWater        Department = "water"
	DepartmentElectricity  Department = "electricity"
	DepartmentSanitation   Department = "sanitation"
	DepartmentPublicSafety Department = "public_safety"
)

var validDepartments = map[Department]bool{
	DepartmentRoads:        true,
	DepartmentWater:        true,
	DepartmentElectricity:  true,
	DepartmentSanitation:   true,
	DepartmentPublicSafety: true,
}

func (d Department) String() string {
	return string(d)
}

func (d Department) IsValid() bool {
	return validDepartments[d]
}

func NewDepartment(s string) (Department, error) {
	d := Department(s)
	if !d.IsValid() {
		return "", fmt.Errorf("invalid department: %s", s)
	}
	return d, nil
}
