package linter

// Metadata is shared by file rules and project rules
type Metadata interface {
	Name() string
	Category() Category
	Severity() Severity
	Description() string
}

// Rule is evaluated once per file. Implementations must be pure: they never
// mutate the contexts and may run concurrently.
type Rule interface {
	Metadata
	Check(file *FileContext, project *ProjectContext) []Violation
}

// ProjectRule is evaluated exactly once per run over the whole project
type ProjectRule interface {
	Metadata
	CheckProject(project *ProjectContext) []Violation
}

// RuleRegistry manages available lint rules in registration order
type RuleRegistry struct {
	rules        map[string]Rule
	order        []string
	projectRules map[string]ProjectRule
	projectOrder []string
}

// NewRuleRegistry creates a new rule registry
func NewRuleRegistry() *RuleRegistry {
	return &RuleRegistry{
		rules:        make(map[string]Rule),
		projectRules: make(map[string]ProjectRule),
	}
}

// Register adds a file rule. Registering a name twice replaces the rule but
// keeps its original position.
func (r *RuleRegistry) Register(rule Rule) {
	name := rule.Name()
	if _, exists := r.rules[name]; !exists {
		r.order = append(r.order, name)
	}
	r.rules[name] = rule
}

// RegisterProjectRule adds a project rule
func (r *RuleRegistry) RegisterProjectRule(rule ProjectRule) {
	name := rule.Name()
	if _, exists := r.projectRules[name]; !exists {
		r.projectOrder = append(r.projectOrder, name)
	}
	r.projectRules[name] = rule
}

// GetRule retrieves a file rule by name
func (r *RuleRegistry) GetRule(name string) (Rule, bool) {
	rule, ok := r.rules[name]
	return rule, ok
}

// GetProjectRule retrieves a project rule by name
func (r *RuleRegistry) GetProjectRule(name string) (ProjectRule, bool) {
	rule, ok := r.projectRules[name]
	return rule, ok
}

// GetAllRules returns all file rules in catalog order
func (r *RuleRegistry) GetAllRules() []Rule {
	rules := make([]Rule, 0, len(r.order))
	for _, name := range r.order {
		rules = append(rules, r.rules[name])
	}
	return rules
}

// GetAllProjectRules returns all project rules in catalog order
func (r *RuleRegistry) GetAllProjectRules() []ProjectRule {
	rules := make([]ProjectRule, 0, len(r.projectOrder))
	for _, name := range r.projectOrder {
		rules = append(rules, r.projectRules[name])
	}
	return rules
}

// GetEnabledRules returns file rules enabled by config
func (r *RuleRegistry) GetEnabledRules(config *Config) []Rule {
	rules := make([]Rule, 0, len(r.order))
	for _, rule := range r.GetAllRules() {
		if config != nil && !config.RuleEnabled(rule.Name()) {
			continue
		}
		rules = append(rules, rule)
	}
	return rules
}

// GetEnabledProjectRules returns project rules enabled by config
func (r *RuleRegistry) GetEnabledProjectRules(config *Config) []ProjectRule {
	rules := make([]ProjectRule, 0, len(r.projectOrder))
	for _, rule := range r.GetAllProjectRules() {
		if config != nil && !config.RuleEnabled(rule.Name()) {
			continue
		}
		rules = append(rules, rule)
	}
	return rules
}

// GetRulesByCategory returns every rule, file or project, in a category
func (r *RuleRegistry) GetRulesByCategory(category Category) []Metadata {
	rules := make([]Metadata, 0)
	for _, rule := range r.GetAllRules() {
		if rule.Category() == category {
			rules = append(rules, rule)
		}
	}
	for _, rule := range r.GetAllProjectRules() {
		if rule.Category() == category {
			rules = append(rules, rule)
		}
	}
	return rules
}

// Len returns the number of registered rules of both kinds
func (r *RuleRegistry) Len() int {
	return len(r.order) + len(r.projectOrder)
}
