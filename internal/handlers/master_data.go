package handlers

import (
	"culture-passport/internal/models"
	"culture-passport/internal/store"
)

func (h *Handler) CompanyCRUD() *CRUD[models.Company, store.CompanyPatch] {
	return NewCRUD[models.Company, store.CompanyPatch](h, h.Companies, "company")
}

func (h *Handler) DepartmentCRUD() *CRUD[models.Department, store.DepartmentPatch] {
	r := NewCRUD[models.Department, store.DepartmentPatch](h, h.Departments, "department")
	r.Filter = queryFilter("company_id")
	return r
}

func (h *Handler) PositionCRUD() *CRUD[models.Position, store.PositionPatch] {
	r := NewCRUD[models.Position, store.PositionPatch](h, h.Positions, "position")
	r.Filter = queryFilter("department_id")
	return r
}

func (h *Handler) CategoryCRUD() *CRUD[models.Category, store.CategoryPatch] {
	return NewCRUD[models.Category, store.CategoryPatch](h, h.Categories, "category")
}
