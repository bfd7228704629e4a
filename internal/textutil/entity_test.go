package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchEntity_Containment(t *testing.T) {
	assert.True(t, MatchEntity("Acme", "Acme Corp", CompanyStopwords, 1))
}

func TestMatchEntity_SuffixWordsCarryNoIdentity(t *testing.T) {
	assert.True(t, MatchEntity("Columbia University", "Columbia College", SchoolStopwords, 1))
	assert.False(t, MatchEntity("Columbia University", "Boston University", SchoolStopwords, 1))
}

func TestMatchEntity_RequiresMinOverlap(t *testing.T) {
	assert.False(t, MatchEntity("New York University", "New Jersey Institute", SchoolStopwords, 2))
}

func TestMatchEntity_Empty(t *testing.T) {
	assert.False(t, MatchEntity("", "Acme", CompanyStopwords, 1))
	assert.False(t, MatchEntity("Acme", "", CompanyStopwords, 1))
}

func TestSchoolMinOverlap_SingleTokenNames(t *testing.T) {
	assert.Equal(t, 1, SchoolMinOverlap("Columbia University", "Columbia College"))
}

func TestSchoolMinOverlap_MultiTokenNames(t *testing.T) {
	assert.Equal(t, 2, SchoolMinOverlap("New York University", "New York Film Academy"))
}

func TestIsNYC(t *testing.T) {
	assert.True(t, IsNYC("New York, United States"))
	assert.True(t, IsNYC("Greater NYC Area"))
	assert.True(t, IsNYC("Brooklyn, NY"))
	assert.False(t, IsNYC("London, UK"))
	assert.False(t, IsNYC(""))
}

func TestCompactRoleTitle_CutsQualifiers(t *testing.T) {
	assert.Equal(t, "Senior Engineer", CompactRoleTitle("Senior   Engineer | Platform Team"))
	assert.Equal(t, "Data Scientist", CompactRoleTitle("Data Scientist, Risk & Fraud"))
}

func TestCompactRoleTitle_CapsLength(t *testing.T) {
	long := "Principal Software Development Engineering Technical Lead Manager of Things"
	got := CompactRoleTitle(long)
	assert.LessOrEqual(t, len(got), 60)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	got := Truncate("this is clearly too long", 10)
	assert.Equal(t, 10, len(got))
	assert.True(t, len(got) <= 10)
}

func TestIsLikelyMetadataCompany_EmploymentTypes(t *testing.T) {
	assert.True(t, IsLikelyMetadataCompany("Full-time"))
	assert.True(t, IsLikelyMetadataCompany("Self-employed"))
	assert.True(t, IsLikelyMetadataCompany("Internship"))
}

func TestIsLikelyMetadataCompany_Durations(t *testing.T) {
	assert.True(t, IsLikelyMetadataCompany("Jan 2021 - Present"))
	assert.True(t, IsLikelyMetadataCompany("2 yrs 3 mos"))
	assert.True(t, IsLikelyMetadataCompany("2019 2023"))
}

func TestIsLikelyMetadataCompany_RealCompanies(t *testing.T) {
	assert.False(t, IsLikelyMetadataCompany("Acme Corp"))
	assert.False(t, IsLikelyMetadataCompany("Sigma Group"))
}

func TestIsLikelyMetadataCompany_Empty(t *testing.T) {
	assert.True(t, IsLikelyMetadataCompany(""))
	assert.True(t, IsLikelyMetadataCompany("  -  "))
}
