package domain

import (
	"errors"
	"path"
	"sort"
	"strings"
)

type FileType string

const (
	FileTypeFile      FileType = "file"
	FileTypeDirectory FileType = "directory"
)

var (
	ErrNotADirectory  = errors.New("cannot add children to a file node")
	ErrDuplicatePath  = errors.New("duplicate path in file tree")
	ErrEmptyNodeName  = errors.New("file node name must not be empty")
	ErrNestedNodeName = errors.New("file node name must not contain a path separator")
)

// FileNode is one node in a virtual project tree. A node is either a file
// (carrying content, never children) or a directory (carrying children,
// never content). Path is always the slash-join of ancestor names; children
// are owned exclusively by their parent.
type FileNode struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Type     FileType    `json:"type"`
	Path     string      `json:"path"`
	Content  string      `json:"content,omitempty"`
	Language string      `json:"language,omitempty"`
	Size     int64       `json:"size,omitempty"`
	Children []*FileNode `json:"children,omitempty"`
}

func NewFile(name, content string) (*FileNode, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	return &FileNode{
		ID:       name,
		Name:     name,
		Type:     FileTypeFile,
		Path:     name,
		Content:  content,
		Language: DetectLanguage(name),
		Size:     int64(len(content)),
	}, nil
}

func NewDirectory(name string) (*FileNode, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	return &FileNode{
		ID:   name,
		Name: name,
		Type: FileTypeDirectory,
		Path: name,
	}, nil
}

func checkName(name string) error {
	if name == "" {
		return ErrEmptyNodeName
	}
	if strings.Contains(name, "/") {
		return ErrNestedNodeName
	}
	return nil
}

// AddChild attaches a node under a directory, rewriting the descendant
// paths to keep the ancestor-join invariant.
func (n *FileNode) AddChild(child *FileNode) error {
	if n.Type != FileTypeDirectory {
		return ErrNotADirectory
	}
	for _, existing := range n.Children {
		if existing.Name == child.Name {
			return ErrDuplicatePath
		}
	}
	child.rebase(n.Path)
	n.Children = append(n.Children, child)
	return nil
}

func (n *FileNode) rebase(parentPath string) {
	n.Path = path.Join(parentPath, n.Name)
	n.ID = n.Path
	for _, c := range n.Children {
		c.rebase(n.Path)
	}
}

// Find walks the tree for the node at the given slash path.
func (n *FileNode) Find(p string) *FileNode {
	if n.Path == p {
		return n
	}
	if !strings.HasPrefix(p, n.Path+"/") && n.Path != "" {
		return nil
	}
	for _, c := range n.Children {
		if found := c.Find(p); found != nil {
			return found
		}
	}
	return nil
}

// Validate re-checks the structural invariants over a whole tree: files
// carry no children, names are well-formed, paths join correctly and stay
// unique.
func (n *FileNode) Validate() error {
	seen := make(map[string]struct{})
	return n.validate("", seen)
}

func (n *FileNode) validate(parentPath string, seen map[string]struct{}) error {
	if err := checkName(n.Name); err != nil {
		return err
	}
	if n.Type == FileTypeFile && len(n.Children) > 0 {
		return ErrNotADirectory
	}
	if want := path.Join(parentPath, n.Name); n.Path != want {
		return errors.New("file node path does not match its ancestry: " + n.Path)
	}
	if _, dup := seen[n.Path]; dup {
		return ErrDuplicatePath
	}
	seen[n.Path] = struct{}{}
	for _, c := range n.Children {
		if err := c.validate(n.Path, seen); err != nil {
			return err
		}
	}
	return nil
}

// BuildFileTree assembles a tree from a flat path→content map, the shape a
// generation's files blob is stored in. Intermediate directories are
// created on demand; siblings are ordered directories-first, then by name.
func BuildFileTree(files map[string]string) ([]*FileNode, error) {
	root := &FileNode{Type: FileTypeDirectory, Path: ""}
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		clean := strings.Trim(path.Clean("/"+p), "/")
		if clean == "" || clean == "." {
			continue
		}
		parts := strings.Split(clean, "/")
		cur := root
		for i, part := range parts {
			last := i == len(parts)-1
			if existing := childByName(cur, part); existing != nil {
				if last {
					return nil, ErrDuplicatePath
				}
				if existing.Type != FileTypeDirectory {
					return nil, ErrNotADirectory
				}
				cur = existing
				continue
			}
			var node *FileNode
			var err error
			if last {
				node, err = NewFile(part, files[p])
			} else {
				node, err = NewDirectory(part)
			}
			if err != nil {
				return nil, err
			}
			if err := cur.AddChild(node); err != nil {
				return nil, err
			}
			cur = node
		}
	}

	sortTree(root)
	return root.Children, nil
}

func childByName(dir *FileNode, name string) *FileNode {
	for _, c := range dir.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func sortTree(n *FileNode) {
	sort.SliceStable(n.Children, func(i, j int) bool {
		a, b := n.Children[i], n.Children[j]
		if a.Type != b.Type {
			return a.Type == FileTypeDirectory
		}
		return a.Name < b.Name
	})
	for _, c := range n.Children {
		sortTree(c)
	}
}

var languageByExt = map[string]string{
	".ts":         "typescript",
	".js":         "javascript",
	".jsx":        "jsx",
	".tsx":        "tsx",
	".css":        "css",
	".scss":       "scss",
	".html":       "html",
	".json":       "json",
	".md":         "markdown",
	".yaml":       "yaml",
	".yml":        "yaml",
	".toml":       "toml",
	".sql":        "sql",
	".graphql":    "graphql",
	".sh":         "shell",
	".py":         "python",
	".rs":         "rust",
	".go":         "go",
	".java":       "java",
	".dockerfile": "dockerfile",
}

func DetectLanguage(name string) string {
	if strings.EqualFold(name, "Dockerfile") {
		return "dockerfile"
	}
	if lang, ok := languageByExt[strings.ToLower(path.Ext(name))]; ok {
		return lang
	}
	return "plaintext"
}
