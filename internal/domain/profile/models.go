package profile

import "time"

type PersonalInfo struct {
	EmpID           string     `json:"empId"`
	About           string     `json:"about,omitempty"`
	WhatILoveMyJob  string     `json:"whatILoveAboutMyJob,omitempty"`
	Interests       string     `json:"interestsAndHobbies,omitempty"`
	Skills          string     `json:"skills,omitempty"`
	Certifications  string     `json:"certifications,omitempty"`
	DateOfBirth     *time.Time `json:"dateOfBirth,omitempty"`
	ResidingAddress string     `json:"residingAddress,omitempty"`
	Nationality     string     `json:"nationality,omitempty"`
	PersonalEmail   string     `json:"personalEmail,omitempty"`
	Gender          string     `json:"gender,omitempty"`
	MaritalStatus   string     `json:"maritalStatus,omitempty"`
}

type BankDetails struct {
	EmpID             string `json:"empId"`
	AccountNumber     string `json:"accountNumber"`
	BankName          string `json:"bankName"`
	IFSCCode          string `json:"ifscCode"`
	PANNo             string `json:"panNo,omitempty"`
	UANNo             string `json:"uanNo,omitempty"`
	BranchName        string `json:"branchName,omitempty"`
	AccountHolderName string `json:"accountHolderName,omitempty"`
	AccountType       string `json:"accountType,omitempty"`
	IsVerified        bool   `json:"isVerified"`
}
