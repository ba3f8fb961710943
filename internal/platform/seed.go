package platform

// DefaultSeed is written when the document is missing and auto-init is
// enabled, so a fresh container starts with a working example file.
const DefaultSeed = `# Homepage Services Configuration
# This file defines the services displayed on your homepage dashboard
# Documentation: https://gethomepage.dev/en/configs/services/

# Example service configuration:
# - Group Name:
#     - Service Name:
#         href: http://localhost:8080
#         description: Service description
#         icon: service-icon

- Development:
    - YAML Editor:
        href: http://localhost:8080
        description: Edit services configuration
        icon: mdi-pencil

# Add your services below:
`
