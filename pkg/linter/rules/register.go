package rules

import "github.com/lumosapi/backend-guard/pkg/linter"

// Rule identifiers as they appear in reports
const (
	RuleClassMaxLines                 = "CLASS_MAX_LINES"
	RuleControllerRest                = "CONTROLLER_REST_CONTROLLER"
	RuleControllerTransactional       = "CONTROLLER_NO_TRANSACTIONAL"
	RuleControllerEntityResponse      = "CONTROLLER_NO_ENTITY_RESPONSE"
	RuleControllerAPIVersion          = "CONTROLLER_API_VERSIONING"
	RuleControllerAPIDoc              = "CONTROLLER_API_DOC_REQUIRED"
	RuleRepositoryExtendsJpa          = "REPOSITORY_EXTENDS_JPA_REPOSITORY"
	RuleEntityNoData                  = "ENTITY_NO_LOMBOK_DATA"
	RuleEntityHasID                   = "ENTITY_HAS_ID"
	RuleEntityNoLayerDep              = "ENTITY_NO_SERVICE_REPOSITORY_DEP"
	RuleEntityRelationFetch           = "ENTITY_RELATION_FETCH_LAZY"
	RuleEntityManyToOneJoin           = "ENTITY_MANY_TO_ONE_HAS_JOIN_COLUMN"
	RuleEntityAuditLifecycle          = "ENTITY_AUDIT_LIFECYCLE"
	RuleSharedMappedSuperclass        = "ENTITY_SHARED_FIELDS_MAPPED_SUPERCLASS"
	RuleEntityOptimisticLock          = "ENTITY_HAS_VERSION_FOR_OPTIMISTIC_LOCK"
	RuleEntityEnumString              = "ENTITY_ENUMERATED_STRING"
	RuleSoftDeleteNoHardDelete        = "SOFT_DELETE_NO_HARD_DELETE_CALL"
	RuleSoftDeleteFindFilter          = "SOFT_DELETE_FIND_QUERY_FILTER"
	RuleMapStructMapperRequired       = "MAPSTRUCT_MAPPER_REQUIRED"
	RuleMapStructNoManualMapping      = "MAPSTRUCT_NO_MANUAL_MAPPING_IN_SERVICE_CONTROLLER"
	RuleDtoValidationAnnotation       = "DTO_REQUEST_VALIDATION_ANNOTATION_REQUIRED"
	RuleDtoValidationMessageConstant  = "DTO_VALIDATION_MESSAGE_MUST_USE_STATIC_CONSTANT"
	RuleLombokRequiredArgsConstructor = "LOMBOK_REQUIRED_ARGS_CONSTRUCTOR_FOR_SPRING_BEAN"
	RuleLombokEntityGetterSetter      = "LOMBOK_ENTITY_GETTER_SETTER_REQUIRED"
	RuleLombokBuilderPreferred        = "LOMBOK_BUILDER_PREFERRED_FOR_DTO_CLASS"
	RuleNestedForStream               = "NESTED_FOR_SHOULD_USE_STREAM_INNER_LOOP"
	RuleNoElse                        = "NO_ELSE_ALLOWED"
	RuleAuditEntitySeparateClass      = "AUDIT_FIELDS_ENTITY_MUST_USE_SEPARATE_BASE_CLASS"
	RuleAuditDtoSeparateClass         = "AUDIT_FIELDS_DTO_MUST_USE_SEPARATE_MODEL"
	RuleExceptionSerialVersionUID     = "EXCEPTION_MUST_DECLARE_SERIAL_VERSION_UID"
	RuleNoDirectTrim                  = "NO_DIRECT_TRIM_USE_STRINGUTILS"
	RuleNoDirectBlankCheck            = "NO_DIRECT_BLANK_CHECK_USE_STRINGUTILS"
	RuleNoDirectStringPredicate       = "NO_DIRECT_STRING_PREDICATE_USE_STRINGUTILS"
	RuleQueryNativeSQL                = "QUERY_MUST_USE_NATIVE_SQL"
	RuleQueryKeywordUppercase         = "QUERY_SQL_KEYWORDS_MUST_BE_UPPERCASE"
	RuleJavadocController             = "JAVADOC_REQUIRED_FOR_CONTROLLER_AND_ENDPOINTS"
	RuleJavadocService                = "JAVADOC_REQUIRED_FOR_SERVICE_METHODS"
	RuleIfRequiresComment             = "IF_STATEMENT_REQUIRES_PRECEDING_COMMENT"
)

// Registry interface for registering rules
type Registry interface {
	Register(rule linter.Rule)
	RegisterProjectRule(rule linter.ProjectRule)
}

// DefaultRules returns the file rules built with the default configuration
func DefaultRules() []linter.Rule {
	return Catalog(linter.DefaultConfig())
}

// Catalog returns the file rules in evaluation order
func Catalog(config *linter.Config) []linter.Rule {
	maxLines := DefaultMaxClassLines
	if config != nil && config.MaxClassLines > 0 {
		maxLines = config.MaxClassLines
	}

	return []linter.Rule{
		// Structure
		NewMaxClassLinesRule(maxLines),

		// Controller layer
		NewControllerRestRule(),
		NewControllerTransactionalRule(),
		NewControllerEntityResponseRule(),
		NewControllerAPIVersionRule(),
		NewControllerAPIDocRule(),

		// Persistence
		NewRepositoryJpaRule(),
		NewEntityNoDataRule(),
		NewEntityHasIDRule(),
		NewEntityLayerDependencyRule(),
		NewEntityRelationFetchRule(),
		NewEntityManyToOneJoinColumnRule(),
		NewEntityAuditLifecycleRule(),
		NewEntityVersionRule(),
		NewEntityEnumeratedStringRule(),
		NewSoftDeleteNoHardDeleteRule(),
		NewSoftDeleteFindFilterRule(),

		// Mapping and DTOs
		NewMapStructNoManualMappingRule(),
		NewDtoValidationAnnotationRule(),
		NewDtoValidationMessageConstantRule(),

		// Lombok
		NewLombokRequiredArgsConstructorRule(),
		NewLombokEntityGetterSetterRule(),
		NewLombokBuilderPreferredRule(),

		// Control flow
		NewNestedForRule(),
		NewNoElseRule(),

		NewAuditEntitySeparateClassRule(),
		NewAuditDtoSeparateClassRule(),
		NewExceptionSerialVersionUIDRule(),

		// String handling
		NewNoDirectTrimRule(),
		NewNoDirectBlankCheckRule(),
		NewNoDirectStringPredicateRule(),

		// Queries
		NewQueryNativeSQLRule(),
		NewQueryKeywordUppercaseRule(),

		// Documentation
		NewJavaDocControllerRule(),
		NewJavaDocServiceRule(),
		NewIfRequiresCommentRule(),
	}
}

// ProjectRules returns the aggregate rules evaluated once per run
func ProjectRules() []linter.ProjectRule {
	return []linter.ProjectRule{
		NewSharedFieldsMappedSuperclassRule(),
		NewMapStructRequiredRule(),
	}
}

// RegisterDefaultRules registers all built-in rules
func RegisterDefaultRules(registry Registry, config *linter.Config) {
	for _, rule := range Catalog(config) {
		registry.Register(rule)
	}
	for _, rule := range ProjectRules() {
		registry.RegisterProjectRule(rule)
	}
}
