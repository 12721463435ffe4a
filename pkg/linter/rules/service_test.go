package rules

import (
	"testing"

	"github.com/lumosapi/backend-guard/pkg/linter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const servicePath = "src/main/java/app/service/UserService.java"

func TestSoftDeleteNoHardDeleteRule(t *testing.T) {
	file := javaFile(servicePath,
		"public class UserService {",
		"  void a() { repository.deleteById(id); }",
		"  void b() { repository.softDelete(id); }",
		"  void c() { repository.delete(user); }",
		"  void d() { repository.deleteAllById(ids); }",
		"}",
	)
	violations := runRule(NewSoftDeleteNoHardDeleteRule(), file)
	assert.Equal(t, []int{2, 4, 5}, lineNumbers(violations))

	other := javaFile("src/main/java/app/job/Cleanup.java", "repository.deleteById(id);")
	assert.Empty(t, runRule(NewSoftDeleteNoHardDeleteRule(), other))
}

func TestMapStructNoManualMappingRule(t *testing.T) {
	lines := []string{
		"UserResponse response = new UserResponse(user.getId());",
		"List<User> users = new ArrayList<>();",
		"UserEntity entity = new UserEntity ();",
	}

	for _, path := range []string{servicePath, controllerPath} {
		violations := runRule(NewMapStructNoManualMappingRule(), javaFile(path, lines...))
		assert.Equal(t, []int{1, 3}, lineNumbers(violations), path)
		for _, v := range violations {
			assert.Equal(t, linter.SeverityWarning, v.Severity)
		}
	}
	assert.Empty(t, runRule(NewMapStructNoManualMappingRule(), javaFile("src/main/java/app/mapper/UserMapper.java", lines...)))
}

func TestJavaDocServiceRule(t *testing.T) {
	file := javaFile(servicePath,
		"@Service",
		"public class UserService {",
		"  public UserService(UserRepository repository) {",
		"  }",
		"  /**",
		"   * Finds a user.",
		"   * @param id the id",
		"   * @return the user",
		"   */",
		"  public User find(Long id) {",
		"  }",
		"  /**",
		"   * Renames.",
		"   * @param id the id",
		"   */",
		"  public void rename(Long id, String name) {",
		"  }",
		"  /**",
		"   * Counts.",
		"   * @param teamId the team",
		"   */",
		"  public long count(Long teamId) {",
		"  }",
		"  public void purge(Long id) {",
		"  }",
		"  public void reset() {",
		"  }",
		"}",
	)

	violations := runRule(NewJavaDocServiceRule(), file)
	require.Len(t, violations, 3)
	assert.Equal(t, []int{16, 22, 24}, lineNumbers(violations))
	assert.Equal(t, []string{
		"Service JavaDoc missing @param for 'name'.",
		"Service JavaDoc missing @return.",
		"Service method must have JavaDoc with @param/@return.",
	}, reasons(violations))
	assert.Equal(t, "public void rename(Long id, String name) {", violations[0].Snippet)
}

func TestJavaDocServiceRule_WrappedSignature(t *testing.T) {
	file := javaFile(servicePath,
		"public class UserService {",
		"  /**",
		"   * Creates.",
		"   * @param request payload",
		"   * @return created user",
		"   */",
		"  @Transactional",
		"  public UserResponse create(@Valid CreateUserRequest request, final String actor)",
		"      throws IOException {",
		"  }",
		"}",
	)

	violations := runRule(NewJavaDocServiceRule(), file)
	require.Len(t, violations, 1)
	assert.Equal(t, 8, violations[0].Line)
	assert.Equal(t, "Service JavaDoc missing @param for 'actor'.", violations[0].Reason)
}
