package testsource

import (
	"bufio"
	"os"
	"path/filepath"

	ignore "github.com/sabhiram/go-gitignore"
)

// ignoreRules reads .gitignore and .pomgen/.ignore under the root and
// compiles them into one matcher. Returns nil when neither exists.
func ignoreRules(rootDir string) *ignore.GitIgnore {
	var allRules []string

	for _, name := range []string{
		filepath.Join(rootDir, ".gitignore"),
		filepath.Join(rootDir, ".pomgen", ".ignore"),
	} {
		if rules, err := readIgnoreFile(name); err == nil {
			allRules = append(allRules, rules...)
		}
	}

	if len(allRules) == 0 {
		return nil
	}
	return ignore.CompileIgnoreLines(allRules...)
}

func readIgnoreFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}
