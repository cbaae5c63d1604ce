package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTenantID(t *testing.T) {
	adminID := uint(7)

	admin := User{ID: 7, Role: RoleAdmin}
	assert.Equal(t, uint(7), admin.TenantID())

	manager := User{ID: 12, Role: RoleManager, AdminID: &adminID}
	assert.Equal(t, uint(7), manager.TenantID())

	employee := User{ID: 30, Role: RoleEmployee, AdminID: &adminID}
	assert.Equal(t, uint(7), employee.TenantID())
}

func TestScopeFor(t *testing.T) {
	adminID := uint(7)

	adminScope := ScopeFor(&User{ID: 7, Role: RoleAdmin})
	assert.Equal(t, uint(7), adminScope.AdminID)
	assert.Nil(t, adminScope.AssignedTo)

	managerScope := ScopeFor(&User{ID: 12, Role: RoleManager, AdminID: &adminID})
	assert.Equal(t, uint(7), managerScope.AdminID)
	assert.Nil(t, managerScope.AssignedTo)

	// Employees only see their own assignments.
	employeeScope := ScopeFor(&User{ID: 30, Role: RoleEmployee, AdminID: &adminID})
	assert.Equal(t, uint(7), employeeScope.AdminID)
	if assert.NotNil(t, employeeScope.AssignedTo) {
		assert.Equal(t, uint(30), *employeeScope.AssignedTo)
	}
}
