package entity

type Company struct {
	Id             int64
	Name           string
	AlternateNames []string
}
