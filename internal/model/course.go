package model

// Course пара (предмет, фактический учитель) - единица фильтрации
type Course struct {
	Key         string `json:"key"`
	SubjectID   int64  `json:"subject_id"`
	TeacherID   int64  `json:"teacher_id"`
	SubjectName string `json:"subject_name"`
	TeacherName string `json:"teacher_name"`
}
