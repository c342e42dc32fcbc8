package detection

import "mediacheck/core/interfaces"

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}

func loggerOf(deps interfaces.Dependencies) interfaces.Logger {
	if deps.Logger == nil {
		return nopLogger{}
	}
	return deps.Logger
}
