package main

import (
	"fmt"

	"github.com/SscSPs/hr_memo_app/internal/core/domain"
	"github.com/SscSPs/hr_memo_app/internal/core/services"
	"github.com/SscSPs/hr_memo_app/internal/dto"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
)

// systemActor creates accounts on behalf of the operator.
var systemActor = domain.Actor{ID: "system", Name: "hr_admin", Role: domain.RoleAdmin}

// validateRequest applies the same binding rules as the HTTP API.
func validateRequest(req any) error {
	v := validator.New()
	v.SetTagName("binding")
	if err := dto.RegisterValidators(v); err != nil {
		return err
	}
	if err := v.Struct(req); err != nil {
		return fmt.Errorf("invalid employee: %w", err)
	}
	return nil
}

func employeeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "employee",
		Short: "Manage employee accounts",
	}
	cmd.AddCommand(employeeCreateCmd())
	return cmd
}

func employeeCreateCmd() *cobra.Command {
	var email, name, role, password string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an employee account",
		Long: `Create an employee account. This is how the first admin is bootstrapped.
Omit --password for employees who sign in with Google only.

Example:
  hr_admin employee create --email admin@example.org --name "Admin" --role admin --password 's3cret-pass'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsedRole, err := domain.ParseRole(role)
			if err != nil {
				return err
			}

			req := dto.CreateEmployeeRequest{
				Email:    email,
				Name:     name,
				Role:     parsedRole,
				Password: password,
			}
			if err := validateRequest(req); err != nil {
				return err
			}

			ctx := cmd.Context()
			_, repos, closeRepos, err := openRepositories(ctx)
			if err != nil {
				return err
			}
			defer closeRepos()

			employee, err := services.NewEmployeeService(repos.EmployeeRepo).CreateEmployee(ctx, req, systemActor)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created %s %s (%s)\n", employee.EmployeeID, employee.Email, employee.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleAgent), "role (admin, rh, gestionnaire, agent)")
	cmd.Flags().StringVar(&password, "password", "", "initial password, at least 8 characters")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}
