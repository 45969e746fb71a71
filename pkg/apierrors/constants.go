package apierrors

const (
	MsgInvalidTaskID         = "invalidTaskID"
	MsgInvalidTaskPayload    = "invalidTaskPayload"
	MsgInvalidSectionPayload = "invalidSectionPayload"
	MsgInvalidConfigPayload  = "invalidConfigPayload"
	MsgInvalidCommentPayload = "invalidCommentPayload"
	MsgInvalidMovePayload    = "invalidMovePayload"
	MsgInvalidWatchPayload   = "invalidWatchPayload"
	MsgInvalidQuery          = "invalidQuery"
	MsgValidation            = "validationError"
	MsgDefaultConfigDelete   = "defaultConfigDelete"
	MsgDefaultConfigDemote   = "defaultConfigDemote"
	MsgInvalidOrderedIDs     = "invalidOrderedIDs"

	MsgNotFound             = "notFound"
	MsgTaskNotFound         = "taskNotFound"
	MsgSectionNotFound      = "sectionNotFound"
	MsgStatusNotFound       = "statusNotFound"
	MsgPriorityNotFound     = "priorityNotFound"
	MsgNotificationNotFound = "notificationNotFound"

	MsgUnauthorized          = "unauthorized"
	MsgForbidden             = "forbidden"
	MsgConfigInUse           = "configInUse"
	MsgInvalidReorderTarget  = "invalidReorderTarget"
	MsgDependencyUnavailable = "dependencyUnavailable"

	MsgFailListTask          = "errorListTask"
	MsgFailCreateTask        = "failCreateTask"
	MsgFailUpdateTask        = "failUpdateTask"
	MsgFailDeleteTask        = "failDeleteTask"
	MsgFailMoveTask          = "failMoveTask"
	MsgFailListSections      = "failListSections"
	MsgFailSaveSection       = "failSaveSection"
	MsgFailListConfig        = "failListConfig"
	MsgFailSaveConfig        = "failSaveConfig"
	MsgFailListComments      = "failListComments"
	MsgFailAddComment        = "failAddComment"
	MsgFailWatch             = "failWatch"
	MsgFailListNotifications = "failListNotifications"
	MsgFailMarkRead          = "failMarkRead"
)
