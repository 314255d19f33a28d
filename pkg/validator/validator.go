package validator

import (
	"log"
	"reflect"
	"regexp"
	"strings"

	"github.com/taskhub/backend/internal/domain"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var hexColorRegexp = regexp.MustCompile(`^#([0-9a-fA-F]{3}){1,2}$`)

func RegisterGinValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		Register(v)
	}
}

// Register installs json tag naming and the custom rules on v.
func Register(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	rules := map[string]validator.Func{
		"color":         colorValidator,
		"projectstatus": projectStatusValidator,
		"taskstatus":    taskStatusValidator,
		"taskpriority":  taskPriorityValidator,
		"projectrole":   projectRoleValidator,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("register %s validator failed", tag)
		}
	}
}

var colorValidator validator.Func = func(fl validator.FieldLevel) bool {
	return hexColorRegexp.MatchString(fl.Field().String())
}

var projectStatusValidator validator.Func = func(fl validator.FieldLevel) bool {
	switch domain.ProjectStatus(fl.Field().String()) {
	case domain.ProjectPlanning, domain.ProjectInProgress, domain.ProjectOnHold, domain.ProjectCompleted, domain.ProjectCancelled:
		return true
	}
	return false
}

var taskStatusValidator validator.Func = func(fl validator.FieldLevel) bool {
	switch domain.TaskStatus(fl.Field().String()) {
	case domain.TaskToDo, domain.TaskInProgress, domain.TaskDone:
		return true
	}
	return false
}

var taskPriorityValidator validator.Func = func(fl validator.FieldLevel) bool {
	switch domain.TaskPriority(fl.Field().String()) {
	case domain.TaskPriorityLow, domain.TaskPriorityMedium, domain.TaskPriorityHigh:
		return true
	}
	return false
}

var projectRoleValidator validator.Func = func(fl validator.FieldLevel) bool {
	switch domain.ProjectRole(fl.Field().String()) {
	case domain.ProjectRoleManager, domain.ProjectRoleContributor, domain.ProjectRoleViewer:
		return true
	}
	return false
}
