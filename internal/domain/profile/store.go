package profile

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	cryptoutil "dayflow/internal/platform/crypto"
)

var ErrNotFound = errors.New("profile record not found")

type Store struct {
	DB     *pgxpool.Pool
	Crypto *cryptoutil.Service
}

func NewStore(db *pgxpool.Pool, crypto *cryptoutil.Service) *Store {
	return &Store{DB: db, Crypto: crypto}
}

func (s *Store) GetPersonalInfo(ctx context.Context, empID string) (*PersonalInfo, error) {
	var info PersonalInfo
	err := s.DB.QueryRow(ctx, `
    SELECT emp_id, COALESCE(about, ''), COALESCE(what_i_love_about_my_job, ''),
           COALESCE(interests_and_hobbies, ''), COALESCE(skills, ''), COALESCE(certifications, ''),
           date_of_birth, COALESCE(residing_address, ''), COALESCE(nationality, ''),
           COALESCE(personal_email, ''), COALESCE(gender, ''), COALESCE(marital_status, '')
    FROM employee_personal_info
    WHERE emp_id = $1
  `, empID).Scan(
		&info.EmpID, &info.About, &info.WhatILoveMyJob, &info.Interests, &info.Skills,
		&info.Certifications, &info.DateOfBirth, &info.ResidingAddress, &info.Nationality,
		&info.PersonalEmail, &info.Gender, &info.MaritalStatus,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// UpsertPersonalInfo relies on the one-row-per-employee unique key.
func (s *Store) UpsertPersonalInfo(ctx context.Context, info PersonalInfo) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO employee_personal_info (emp_id, about, what_i_love_about_my_job, interests_and_hobbies,
      skills, certifications, date_of_birth, residing_address, nationality, personal_email, gender, marital_status)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
    ON CONFLICT (emp_id) DO UPDATE SET
      about = EXCLUDED.about,
      what_i_love_about_my_job = EXCLUDED.what_i_love_about_my_job,
      interests_and_hobbies = EXCLUDED.interests_and_hobbies,
      skills = EXCLUDED.skills,
      certifications = EXCLUDED.certifications,
      date_of_birth = EXCLUDED.date_of_birth,
      residing_address = EXCLUDED.residing_address,
      nationality = EXCLUDED.nationality,
      personal_email = EXCLUDED.personal_email,
      gender = EXCLUDED.gender,
      marital_status = EXCLUDED.marital_status,
      updated_at = now()
  `,
		info.EmpID, info.About, info.WhatILoveMyJob, info.Interests, info.Skills,
		info.Certifications, info.DateOfBirth, info.ResidingAddress, info.Nationality,
		info.PersonalEmail, info.Gender, info.MaritalStatus,
	)
	return err
}

func (s *Store) GetBankDetails(ctx context.Context, empID string) (*BankDetails, error) {
	var details BankDetails
	var accountEnc, panEnc []byte
	var accountPlain, panPlain string
	err := s.DB.QueryRow(ctx, `
    SELECT emp_id, COALESCE(account_number, ''), account_number_enc, bank_name, ifsc_code,
           COALESCE(pan_no, ''), pan_no_enc, COALESCE(uan_no, ''), COALESCE(branch_name, ''),
           COALESCE(account_holder_name, ''), COALESCE(account_type, ''), is_verified
    FROM employee_bank_details
    WHERE emp_id = $1
  `, empID).Scan(
		&details.EmpID, &accountPlain, &accountEnc, &details.BankName, &details.IFSCCode,
		&panPlain, &panEnc, &details.UANNo, &details.BranchName,
		&details.AccountHolderName, &details.AccountType, &details.IsVerified,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	details.AccountNumber = decryptFallback(s.Crypto, accountEnc, accountPlain)
	details.PANNo = decryptFallback(s.Crypto, panEnc, panPlain)
	return &details, nil
}

func (s *Store) UpsertBankDetails(ctx context.Context, details BankDetails) error {
	var accountEnc, panEnc []byte
	var accountPlain, panPlain any = details.AccountNumber, details.PANNo
	if s.Crypto != nil && s.Crypto.Configured() {
		accountEnc, _ = s.Crypto.EncryptString(details.AccountNumber)
		panEnc, _ = s.Crypto.EncryptString(details.PANNo)
		accountPlain = nil
		panPlain = nil
	}
	_, err := s.DB.Exec(ctx, `
    INSERT INTO employee_bank_details (emp_id, account_number, account_number_enc, bank_name, ifsc_code,
      pan_no, pan_no_enc, uan_no, branch_name, account_holder_name, account_type)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
    ON CONFLICT (emp_id) DO UPDATE SET
      account_number = EXCLUDED.account_number,
      account_number_enc = EXCLUDED.account_number_enc,
      bank_name = EXCLUDED.bank_name,
      ifsc_code = EXCLUDED.ifsc_code,
      pan_no = EXCLUDED.pan_no,
      pan_no_enc = EXCLUDED.pan_no_enc,
      uan_no = EXCLUDED.uan_no,
      branch_name = EXCLUDED.branch_name,
      account_holder_name = EXCLUDED.account_holder_name,
      account_type = EXCLUDED.account_type,
      is_verified = false,
      updated_at = now()
  `,
		details.EmpID, accountPlain, accountEnc, details.BankName, details.IFSCCode,
		panPlain, panEnc, nullIfEmpty(details.UANNo), details.BranchName,
		details.AccountHolderName, details.AccountType,
	)
	return err
}

func decryptFallback(crypto *cryptoutil.Service, encrypted []byte, plain string) string {
	if crypto == nil || !crypto.Configured() || len(encrypted) == 0 {
		return plain
	}
	decrypted, err := crypto.DecryptString(encrypted)
	if err != nil {
		return plain
	}
	return decrypted
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
