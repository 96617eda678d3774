package bundle

// Static content skeletons written verbatim into every bundle. They are the
// starting point for authoring resources that do not exist in the target yet:
// a flow that immediately disconnects, and a module that immediately returns.

const flowTemplate = `{
  "Version": "2019-10-30",
  "StartAction": "12345678-0000-4000-8000-000000000001",
  "Metadata": {
    "entryPointPosition": {
      "x": 20,
      "y": 20
    },
    "ActionMetadata": {
      "12345678-0000-4000-8000-000000000001": {
        "position": {
          "x": 140,
          "y": 20
        }
      }
    }
  },
  "Actions": [
    {
      "Identifier": "12345678-0000-4000-8000-000000000001",
      "Type": "DisconnectParticipant",
      "Parameters": {},
      "Transitions": {}
    }
  ]
}
`

const moduleTemplate = `{
  "Version": "2019-10-30",
  "StartAction": "12345678-0000-4000-8000-000000000002",
  "Metadata": {
    "entryPointPosition": {
      "x": 20,
      "y": 20
    },
    "ActionMetadata": {
      "12345678-0000-4000-8000-000000000002": {
        "position": {
          "x": 140,
          "y": 20
        }
      }
    }
  },
  "Actions": [
    {
      "Identifier": "12345678-0000-4000-8000-000000000002",
      "Type": "EndFlowModuleExecution",
      "Parameters": {},
      "Transitions": {}
    }
  ]
}
`
