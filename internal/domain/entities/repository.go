package entities

import "time"

// BranchHead points a branch name at the local hash of its latest mirror commit.
type BranchHead struct {
	Name       string `json:"name"        yaml:"name"`
	HeadCommit string `json:"head_commit" yaml:"head_commit"`
}

// Repository is the document describing the version-controlled tree of one project.
type Repository struct {
	ID            string       `json:"id"             yaml:"id"`
	ProjectID     string       `json:"project_id"     yaml:"project_id"`
	Name          string       `json:"name"           yaml:"name"`
	Description   string       `json:"description"    yaml:"description"`
	Owner         string       `json:"owner"          yaml:"owner"`
	DefaultBranch string       `json:"default_branch" yaml:"default_branch"`
	Branches      []BranchHead `json:"branches"       yaml:"branches"`
	CreatedAt     time.Time    `json:"created_at"     yaml:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"     yaml:"updated_at"`
}

// Branch returns the head pointer for the given branch name.
func (r *Repository) Branch(name string) (BranchHead, bool) {
	for _, b := range r.Branches {
		if b.Name == name {
			return b, true
		}
	}
	return BranchHead{}, false
}

// SetBranchHead moves the head of a branch, adding the branch when it is not known yet.
func (r *Repository) SetBranchHead(name, commitHash string) {
	for i := range r.Branches {
		if r.Branches[i].Name == name {
			r.Branches[i].HeadCommit = commitHash
			return
		}
	}
	r.Branches = append(r.Branches, BranchHead{Name: name, HeadCommit: commitHash})
}

// BranchNames returns the names of every branch recorded on the document.
func (r *Repository) BranchNames() []string {
	names := make([]string, 0, len(r.Branches))
	for _, b := range r.Branches {
		names = append(names, b.Name)
	}
	return names
}
