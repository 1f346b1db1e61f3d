package controllers

import (
	"strings"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rios0rios0/gitvault/internal/domain/entities"
)

const yamlIndent = 2

// render writes value to the command output as YAML.
func render(cmd *cobra.Command, value any) {
	encoder := yaml.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent(yamlIndent)
	if err := encoder.Encode(value); err != nil {
		logger.Errorf("failed to render output: %v", err)
	}
	_ = encoder.Close()
}

// repositoryRef returns the repository id or project id given with --repo.
func repositoryRef(cmd *cobra.Command) string {
	ref, _ := cmd.Flags().GetString("repo")
	return strings.TrimSpace(ref)
}

// author returns the identity given with --author and --email.
func author(cmd *cobra.Command) entities.Author {
	name, _ := cmd.Flags().GetString("author")
	email, _ := cmd.Flags().GetString("email")
	return entities.Author{Name: name, Email: email}
}

func addBranchFlag(cmd *cobra.Command, usage string) {
	cmd.Flags().StringP("branch", "b", "", usage)
}
