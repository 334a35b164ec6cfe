package service

// exportDataSchema is the structural contract of the versioned
// interchange payload. It gates imports before any record-level
// validation runs; a payload failing it is rejected outright.
const exportDataSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["version", "exportDate", "tasks", "categories", "settings"],
  "properties": {
    "version": {"type": "string"},
    "exportDate": {"type": "string"},
    "tasks": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "name", "categoryId", "createdAt"],
        "properties": {
          "id": {"type": "string"},
          "name": {"type": "string"},
          "description": {"type": "string"},
          "categoryId": {"type": "string"},
          "createdAt": {"type": "string"},
          "lastCompletedAt": {"type": ["string", "null"]},
          "expectedFrequency": {
            "type": "object",
            "required": ["value", "unit"],
            "properties": {
              "value": {"type": "integer"},
              "unit": {"type": "string"}
            }
          },
          "timeCommitment": {"type": "string"},
          "isArchived": {"type": "boolean"},
          "notes": {"type": "string"}
        }
      }
    },
    "categories": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "name", "color", "order"],
        "properties": {
          "id": {"type": "string"},
          "name": {"type": "string"},
          "color": {"type": "string"},
          "icon": {"type": "string"},
          "isDefault": {"type": "boolean"},
          "order": {"type": "integer"}
        }
      }
    },
    "settings": {
      "type": "object",
      "required": ["id"],
      "properties": {
        "id": {"type": "string"},
        "lastBackupDate": {"type": ["string", "null"]},
        "currentView": {"type": "string"},
        "theme": {"type": "string"},
        "textSize": {"type": "string"},
        "highContrast": {"type": "boolean"},
        "reducedMotion": {"type": "boolean"},
        "onboardingCompleted": {"type": "boolean"}
      }
    }
  }
}`
